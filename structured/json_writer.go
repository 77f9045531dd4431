package structured

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// JSONWriter writes a document as indented JSON.
type JSONWriter struct {
	out    *bufio.Writer
	closer io.Closer
	stack  []byte // '{' or '['
	counts []int
	err    error
}

// NewJSONWriter wraps w. If w is also an io.Closer it is closed by Close.
func NewJSONWriter(w io.Writer) *JSONWriter {
	jw := &JSONWriter{out: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		jw.closer = c
	}
	return jw
}

func (w *JSONWriter) BeginDocument() error {
	if len(w.stack) != 0 {
		return fmt.Errorf("json: document already begun")
	}
	return w.open('{')
}

func (w *JSONWriter) EndDocument() error {
	if err := w.close('{'); err != nil {
		return err
	}
	w.raw("\n")
	return w.err
}

func (w *JSONWriter) BeginObject(name string) error {
	if err := w.member(name); err != nil {
		return err
	}
	return w.open('{')
}

func (w *JSONWriter) EndObject() error { return w.close('{') }

func (w *JSONWriter) BeginArray(name string) error {
	if err := w.member(name); err != nil {
		return err
	}
	return w.open('[')
}

// member positions the next object or array: keyed inside objects,
// anonymous inside arrays.
func (w *JSONWriter) member(name string) error {
	if w.top() == '[' {
		if name != "" {
			return fmt.Errorf("json: named element %q inside an array", name)
		}
		w.comma()
		w.raw(w.indent())
		return w.err
	}
	return w.key(name)
}

func (w *JSONWriter) EndArray() error { return w.close('[') }

func (w *JSONWriter) KeyValue(key string, value any) error {
	if err := w.key(key); err != nil {
		return err
	}
	return w.scalar(value)
}

// Value writes an array element.
func (w *JSONWriter) Value(value any) error {
	if w.top() != '[' {
		return fmt.Errorf("json: Value outside an array")
	}
	w.comma()
	w.raw(w.indent())
	return w.scalar(value)
}

func (w *JSONWriter) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.out.Flush()
}

func (w *JSONWriter) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (w *JSONWriter) top() byte {
	if len(w.stack) == 0 {
		return 0
	}
	return w.stack[len(w.stack)-1]
}

func (w *JSONWriter) indent() string {
	return strings.Repeat("  ", len(w.stack))
}

// comma separates siblings and moves to a fresh line.
func (w *JSONWriter) comma() {
	if len(w.counts) == 0 {
		return
	}
	if w.counts[len(w.counts)-1] > 0 {
		w.raw(",")
	}
	w.counts[len(w.counts)-1]++
	if len(w.stack) > 0 {
		w.raw("\n")
	}
}

func (w *JSONWriter) key(name string) error {
	if w.top() != '{' {
		return fmt.Errorf("json: key %q outside an object", name)
	}
	w.comma()
	w.raw(w.indent())
	b, err := json.Marshal(name)
	if err != nil {
		return err
	}
	w.raw(string(b) + ": ")
	return w.err
}

func (w *JSONWriter) open(bracket byte) error {
	if bracket == '{' && len(w.stack) == 0 {
		// document root has no preceding key
		w.raw("{")
	} else {
		w.raw(string(bracket))
	}
	w.stack = append(w.stack, bracket)
	w.counts = append(w.counts, 0)
	return w.err
}

func (w *JSONWriter) close(bracket byte) error {
	if w.top() != bracket {
		return fmt.Errorf("json: unbalanced close")
	}
	wrote := w.counts[len(w.counts)-1] > 0
	w.stack = w.stack[:len(w.stack)-1]
	w.counts = w.counts[:len(w.counts)-1]
	if wrote {
		w.raw("\n" + w.indent())
	}
	if bracket == '{' {
		w.raw("}")
	} else {
		w.raw("]")
	}
	return w.err
}

func (w *JSONWriter) scalar(value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("json: encode value: %w", err)
	}
	w.raw(string(b))
	return w.err
}

func (w *JSONWriter) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.out.WriteString(s)
}
