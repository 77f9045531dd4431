package structured

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONReader reads a JSON document as structured events. Numbers decode as
// float64.
type JSONReader struct {
	dec     *json.Decoder
	closer  io.Closer
	buf     []json.Token
	started bool
	depth   int
	inArray []bool
}

// NewJSONReader wraps r. If r is also an io.Closer it is closed by Close.
func NewJSONReader(r io.Reader) *JSONReader {
	jr := &JSONReader{dec: json.NewDecoder(r)}
	if c, ok := r.(io.Closer); ok {
		jr.closer = c
	}
	return jr
}

func (r *JSONReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// peekTok returns the i-th upcoming token without consuming it.
func (r *JSONReader) peekTok(i int) (json.Token, error) {
	for len(r.buf) <= i {
		t, err := r.dec.Token()
		if err != nil {
			return nil, err
		}
		r.buf = append(r.buf, t)
	}
	return r.buf[i], nil
}

func (r *JSONReader) token() (json.Token, error) {
	if len(r.buf) > 0 {
		t := r.buf[0]
		r.buf = r.buf[1:]
		return t, nil
	}
	return r.dec.Token()
}

func isDelim(t json.Token, d rune) bool {
	v, ok := t.(json.Delim)
	return ok && rune(v) == d
}

func (r *JSONReader) Peek() (ElementType, error) {
	if !r.started {
		return BeginDocument, nil
	}
	if r.depth == 0 {
		return EndOfInput, nil
	}
	t0, err := r.peekTok(0)
	if err == io.EOF {
		return EndOfInput, nil
	}
	if err != nil {
		return EndOfInput, err
	}
	top := r.inArray[len(r.inArray)-1]
	if top {
		switch {
		case isDelim(t0, ']'):
			return EndArray, nil
		case isDelim(t0, '{'):
			return BeginObject, nil
		case isDelim(t0, '['):
			return BeginArray, nil
		default:
			return Value, nil
		}
	}
	if isDelim(t0, '}') {
		if r.depth == 1 {
			return EndDocument, nil
		}
		return EndObject, nil
	}
	t1, err := r.peekTok(1)
	if err != nil {
		return EndOfInput, err
	}
	switch {
	case isDelim(t1, '{'):
		return BeginObject, nil
	case isDelim(t1, '['):
		return BeginArray, nil
	default:
		return Value, nil
	}
}

func (r *JSONReader) BeginDocument() error {
	if r.started {
		return fmt.Errorf("json: document already begun")
	}
	t, err := r.token()
	if err != nil {
		return fmt.Errorf("json: begin document: %w", err)
	}
	if !isDelim(t, '{') {
		return fmt.Errorf("json: document must be an object, got %v", t)
	}
	r.started = true
	r.push(false)
	return nil
}

func (r *JSONReader) EndDocument() error {
	return r.end('}', "document")
}

func (r *JSONReader) BeginObject(expect string) (string, error) {
	name, err := r.begin('{', "object")
	if err != nil {
		return "", err
	}
	if err := expectName("object", expect, name); err != nil {
		return "", err
	}
	r.push(false)
	return name, nil
}

func (r *JSONReader) EndObject() error { return r.end('}', "object") }

func (r *JSONReader) BeginArray(expect string) (string, error) {
	name, err := r.begin('[', "array")
	if err != nil {
		return "", err
	}
	if err := expectName("array", expect, name); err != nil {
		return "", err
	}
	r.push(true)
	return name, nil
}

func (r *JSONReader) EndArray() error { return r.end(']', "array") }

// NextKeyValue reads a scalar member of the current object.
func (r *JSONReader) NextKeyValue() (string, any, error) {
	if r.depth == 0 || r.inArray[len(r.inArray)-1] {
		return "", nil, fmt.Errorf("json: not inside an object")
	}
	key, err := r.name()
	if err != nil {
		return "", nil, err
	}
	v, err := r.token()
	if err != nil {
		return "", nil, fmt.Errorf("json: value of %q: %w", key, err)
	}
	if _, ok := v.(json.Delim); ok {
		return "", nil, fmt.Errorf("json: %q is not a scalar", key)
	}
	return key, v, nil
}

// NextValue reads a scalar element of the current array.
func (r *JSONReader) NextValue() (any, error) {
	if r.depth == 0 || !r.inArray[len(r.inArray)-1] {
		return nil, fmt.Errorf("json: not inside an array")
	}
	v, err := r.token()
	if err != nil {
		return nil, fmt.Errorf("json: value: %w", err)
	}
	if _, ok := v.(json.Delim); ok {
		return nil, fmt.Errorf("json: expected a scalar, got %v", v)
	}
	return v, nil
}

// begin consumes the optional member name and the opening delimiter.
func (r *JSONReader) begin(open rune, kind string) (string, error) {
	if r.depth == 0 {
		return "", fmt.Errorf("json: %s outside the document", kind)
	}
	name := ""
	if !r.inArray[len(r.inArray)-1] {
		var err error
		name, err = r.name()
		if err != nil {
			return "", err
		}
	}
	t, err := r.token()
	if err != nil {
		return "", fmt.Errorf("json: begin %s: %w", kind, err)
	}
	if !isDelim(t, open) {
		return "", fmt.Errorf("json: expected %s, got %v", kind, t)
	}
	return name, nil
}

func (r *JSONReader) end(close rune, kind string) error {
	if r.depth == 0 {
		return fmt.Errorf("json: end %s outside the document", kind)
	}
	t, err := r.token()
	if err != nil {
		return fmt.Errorf("json: end %s: %w", kind, err)
	}
	if !isDelim(t, close) {
		return fmt.Errorf("json: expected end of %s, got %v", kind, t)
	}
	r.depth--
	r.inArray = r.inArray[:len(r.inArray)-1]
	return nil
}

func (r *JSONReader) name() (string, error) {
	t, err := r.token()
	if err != nil {
		return "", fmt.Errorf("json: member name: %w", err)
	}
	s, ok := t.(string)
	if !ok {
		return "", fmt.Errorf("json: expected member name, got %v", t)
	}
	return s, nil
}

func (r *JSONReader) push(array bool) {
	r.depth++
	r.inArray = append(r.inArray, array)
}
