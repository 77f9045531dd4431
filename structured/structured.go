// Package structured reads and writes hierarchical documents through a
// format-independent begin/end event surface, with JSON and XML backends.
package structured

import "fmt"

// ElementType identifies the next element in a structured stream.
type ElementType int

const (
	BeginDocument ElementType = iota
	EndDocument
	BeginObject
	EndObject
	BeginArray
	EndArray
	Name
	Value
	EndOfInput
)

func (e ElementType) String() string {
	switch e {
	case BeginDocument:
		return "BeginDocument"
	case EndDocument:
		return "EndDocument"
	case BeginObject:
		return "BeginObject"
	case EndObject:
		return "EndObject"
	case BeginArray:
		return "BeginArray"
	case EndArray:
		return "EndArray"
	case Name:
		return "Name"
	case Value:
		return "Value"
	case EndOfInput:
		return "EndOfInput"
	default:
		return fmt.Sprintf("ElementType(%d)", int(e))
	}
}

// Writer emits a structured document. Scalar values may be string, bool,
// nil, or any numeric type.
type Writer interface {
	BeginDocument() error
	EndDocument() error
	BeginObject(name string) error
	EndObject() error
	BeginArray(name string) error
	EndArray() error
	KeyValue(key string, value any) error
	Value(value any) error
	Flush() error
	Close() error
}

// Reader consumes a structured document. Peek reports the next element
// without consuming it. BeginObject and BeginArray return the element
// name; passing a non-empty expect fails when the name differs.
type Reader interface {
	Peek() (ElementType, error)
	BeginDocument() error
	EndDocument() error
	BeginObject(expect string) (string, error)
	EndObject() error
	BeginArray(expect string) (string, error)
	EndArray() error
	NextKeyValue() (string, any, error)
	NextValue() (any, error)
	Close() error
}

func expectName(kind, expect, got string) error {
	if expect != "" && expect != got {
		return fmt.Errorf("expected %s %q, got %q", kind, expect, got)
	}
	return nil
}
