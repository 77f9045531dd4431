package structured

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// rootElement wraps an XML document; array and object elements carry a
// type attribute so the structure round-trips.
const (
	rootElement  = "document"
	arrayElement = "item"
	typeAttr     = "type"
)

// XMLWriter writes a document as indented XML. Scalar values are written
// as element text, so types flatten to strings on the way back in.
type XMLWriter struct {
	enc    *xml.Encoder
	closer io.Closer
	stack  []string
	types  []byte // 'o' or 'a'
}

// NewXMLWriter wraps w. If w is also an io.Closer it is closed by Close.
func NewXMLWriter(w io.Writer) *XMLWriter {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	xw := &XMLWriter{enc: enc}
	if c, ok := w.(io.Closer); ok {
		xw.closer = c
	}
	return xw
}

func (w *XMLWriter) BeginDocument() error {
	if len(w.stack) != 0 {
		return fmt.Errorf("xml: document already begun")
	}
	return w.open(rootElement, 'o')
}

func (w *XMLWriter) EndDocument() error { return w.closeElement() }

func (w *XMLWriter) BeginObject(name string) error {
	return w.open(w.elementName(name), 'o')
}

func (w *XMLWriter) EndObject() error { return w.closeElement() }

func (w *XMLWriter) BeginArray(name string) error {
	return w.open(w.elementName(name), 'a')
}

func (w *XMLWriter) EndArray() error { return w.closeElement() }

func (w *XMLWriter) KeyValue(key string, value any) error {
	if w.topType() != 'o' {
		return fmt.Errorf("xml: key %q outside an object", key)
	}
	return w.scalarElement(key, value)
}

func (w *XMLWriter) Value(value any) error {
	if w.topType() != 'a' {
		return fmt.Errorf("xml: Value outside an array")
	}
	return w.scalarElement(arrayElement, value)
}

func (w *XMLWriter) Flush() error { return w.enc.Flush() }

func (w *XMLWriter) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// elementName resolves anonymous entries inside arrays.
func (w *XMLWriter) elementName(name string) string {
	if name == "" && w.topType() == 'a' {
		return arrayElement
	}
	return name
}

func (w *XMLWriter) topType() byte {
	if len(w.types) == 0 {
		return 0
	}
	return w.types[len(w.types)-1]
}

func (w *XMLWriter) open(name string, kind byte) error {
	if name == "" {
		return fmt.Errorf("xml: element needs a name")
	}
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if len(w.stack) > 0 { // the root carries no type attribute
		v := "object"
		if kind == 'a' {
			v = "array"
		}
		start.Attr = []xml.Attr{{Name: xml.Name{Local: typeAttr}, Value: v}}
	}
	if err := w.enc.EncodeToken(start); err != nil {
		return fmt.Errorf("xml: open %s: %w", name, err)
	}
	w.stack = append(w.stack, name)
	w.types = append(w.types, kind)
	return nil
}

func (w *XMLWriter) closeElement() error {
	if len(w.stack) == 0 {
		return fmt.Errorf("xml: unbalanced close")
	}
	name := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	w.types = w.types[:len(w.types)-1]
	err := w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
	if err != nil {
		return fmt.Errorf("xml: close %s: %w", name, err)
	}
	return nil
}

func (w *XMLWriter) scalarElement(name string, value any) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}
	if value != nil {
		text := fmt.Sprint(value)
		if err := w.enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	return w.enc.EncodeToken(xml.EndElement{Name: start.Name})
}

// XMLReader reads documents written by XMLWriter. Scalars come back as
// strings.
type XMLReader struct {
	dec     *xml.Decoder
	closer  io.Closer
	peeked  xml.Token
	started bool
	inArray []bool
}

// NewXMLReader wraps r. If r is also an io.Closer it is closed by Close.
func NewXMLReader(r io.Reader) *XMLReader {
	xr := &XMLReader{dec: xml.NewDecoder(r)}
	if c, ok := r.(io.Closer); ok {
		xr.closer = c
	}
	return xr
}

func (r *XMLReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// peek returns the next non-whitespace token without consuming it.
func (r *XMLReader) peek() (xml.Token, error) {
	if r.peeked != nil {
		return r.peeked, nil
	}
	for {
		t, err := r.dec.Token()
		if err != nil {
			return nil, err
		}
		if cd, ok := t.(xml.CharData); ok && strings.TrimSpace(string(cd)) == "" {
			continue
		}
		if _, ok := t.(xml.Comment); ok {
			continue
		}
		if _, ok := t.(xml.ProcInst); ok {
			continue
		}
		r.peeked = xml.CopyToken(t)
		return r.peeked, nil
	}
}

func (r *XMLReader) next() (xml.Token, error) {
	t, err := r.peek()
	r.peeked = nil
	return t, err
}

func elementKind(se xml.StartElement) byte {
	for _, a := range se.Attr {
		if a.Name.Local == typeAttr {
			if a.Value == "array" {
				return 'a'
			}
			return 'o'
		}
	}
	return 's' // no type attribute: a scalar element
}

func (r *XMLReader) Peek() (ElementType, error) {
	if !r.started {
		return BeginDocument, nil
	}
	if len(r.inArray) == 0 {
		return EndOfInput, nil
	}
	t, err := r.peek()
	if err == io.EOF {
		return EndOfInput, nil
	}
	if err != nil {
		return EndOfInput, err
	}
	switch x := t.(type) {
	case xml.StartElement:
		switch elementKind(x) {
		case 'a':
			return BeginArray, nil
		case 'o':
			return BeginObject, nil
		default:
			return Value, nil
		}
	case xml.EndElement:
		if len(r.inArray) == 1 {
			return EndDocument, nil
		}
		if r.inArray[len(r.inArray)-1] {
			return EndArray, nil
		}
		return EndObject, nil
	default:
		return EndOfInput, fmt.Errorf("xml: unexpected token %T", t)
	}
}

func (r *XMLReader) BeginDocument() error {
	if r.started {
		return fmt.Errorf("xml: document already begun")
	}
	t, err := r.next()
	if err != nil {
		return fmt.Errorf("xml: begin document: %w", err)
	}
	se, ok := t.(xml.StartElement)
	if !ok || se.Name.Local != rootElement {
		return fmt.Errorf("xml: expected <%s>, got %v", rootElement, t)
	}
	r.started = true
	r.inArray = append(r.inArray, false)
	return nil
}

func (r *XMLReader) EndDocument() error { return r.end("document") }

func (r *XMLReader) BeginObject(expect string) (string, error) {
	return r.begin('o', expect, "object")
}

func (r *XMLReader) EndObject() error { return r.end("object") }

func (r *XMLReader) BeginArray(expect string) (string, error) {
	return r.begin('a', expect, "array")
}

func (r *XMLReader) EndArray() error { return r.end("array") }

func (r *XMLReader) NextKeyValue() (string, any, error) {
	name, v, err := r.scalar()
	if err != nil {
		return "", nil, err
	}
	return name, v, nil
}

func (r *XMLReader) NextValue() (any, error) {
	_, v, err := r.scalar()
	return v, err
}

func (r *XMLReader) begin(kind byte, expect, what string) (string, error) {
	t, err := r.next()
	if err != nil {
		return "", fmt.Errorf("xml: begin %s: %w", what, err)
	}
	se, ok := t.(xml.StartElement)
	if !ok || elementKind(se) != kind {
		return "", fmt.Errorf("xml: expected an %s, got %v", what, t)
	}
	name := se.Name.Local
	if name == arrayElement {
		name = ""
	}
	if err := expectName(what, expect, name); err != nil {
		return "", err
	}
	r.inArray = append(r.inArray, kind == 'a')
	return name, nil
}

func (r *XMLReader) end(what string) error {
	if len(r.inArray) == 0 {
		return fmt.Errorf("xml: end %s outside the document", what)
	}
	t, err := r.next()
	if err != nil {
		return fmt.Errorf("xml: end %s: %w", what, err)
	}
	if _, ok := t.(xml.EndElement); !ok {
		return fmt.Errorf("xml: expected end of %s, got %v", what, t)
	}
	r.inArray = r.inArray[:len(r.inArray)-1]
	return nil
}

// scalar consumes <name>text</name> and returns the name and text.
func (r *XMLReader) scalar() (string, string, error) {
	t, err := r.next()
	if err != nil {
		return "", "", fmt.Errorf("xml: scalar: %w", err)
	}
	se, ok := t.(xml.StartElement)
	if !ok || elementKind(se) != 's' {
		return "", "", fmt.Errorf("xml: expected a scalar element, got %v", t)
	}
	var text strings.Builder
	for {
		t, err := r.dec.Token()
		if err != nil {
			return "", "", fmt.Errorf("xml: scalar %s: %w", se.Name.Local, err)
		}
		switch x := t.(type) {
		case xml.CharData:
			text.Write(x)
		case xml.EndElement:
			return se.Name.Local, text.String(), nil
		default:
			return "", "", fmt.Errorf("xml: scalar %s holds %T", se.Name.Local, t)
		}
	}
}
