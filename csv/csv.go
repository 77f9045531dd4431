// Package csv reads and writes delimiter separated files with a
// configurable delimiter, quote, escape, and comment character. The escape
// character and the keep-empty-cells option go beyond what encoding/csv
// supports, so parsing is done here.
package csv

import (
	"context"
	"fmt"
	"io"

	"github.com/dbracewell/mango/resource"
)

// CSV describes a delimited file format. The zero value is not usable;
// start from New or TSV and chain the builder methods.
type CSV struct {
	delimiter rune
	quote     rune
	escape    rune
	comment   rune
	keepEmpty bool
	hasHeader bool
	header    []string
}

// New returns the comma format: '"' quote, '\' escape, '#' comment, empty
// cells kept, no header.
func New() CSV {
	return CSV{
		delimiter: ',',
		quote:     '"',
		escape:    '\\',
		comment:   '#',
		keepEmpty: true,
	}
}

// TSV returns the tab separated variant of New.
func TSV() CSV {
	return New().Delimiter('\t')
}

func (c CSV) Delimiter(r rune) CSV { c.delimiter = r; return c }
func (c CSV) Quote(r rune) CSV     { c.quote = r; return c }
func (c CSV) Escape(r rune) CSV    { c.escape = r; return c }
func (c CSV) Comment(r rune) CSV   { c.comment = r; return c }

// RemoveEmptyCells drops empty cells from parsed rows.
func (c CSV) RemoveEmptyCells() CSV { c.keepEmpty = false; return c }

// HasHeader marks the first row as the header.
func (c CSV) HasHeader() CSV { c.hasHeader = true; return c }

// Header names the columns explicitly and implies HasHeader for writing.
func (c CSV) Header(names ...string) CSV {
	c.header = names
	c.hasHeader = len(names) > 0
	return c
}

// Reader wraps an io.Reader. When the format has a header and no explicit
// column names, the first row is consumed as the header.
func (c CSV) Reader(r io.Reader) (*Reader, error) {
	cr := newReader(c, r, nil)
	if c.hasHeader && len(c.header) == 0 {
		row, err := cr.Read()
		if err == io.EOF {
			return cr, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		cr.header = row
	}
	return cr, nil
}

// ResourceReader opens the resource and wraps it. Close the reader to
// release the resource.
func (c CSV) ResourceReader(ctx context.Context, r resource.Resource) (*Reader, error) {
	rc, err := r.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r, err)
	}
	cr, err := c.Reader(rc)
	if err != nil {
		rc.Close()
		return nil, err
	}
	cr.closer = rc
	return cr, nil
}

// Writer wraps an io.Writer.
func (c CSV) Writer(w io.Writer) *Writer {
	return newWriter(c, w, nil)
}

// ResourceWriter creates the resource and wraps it. Close the writer to
// commit.
func (c CSV) ResourceWriter(ctx context.Context, r resource.Resource) (*Writer, error) {
	wc, err := r.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", r, err)
	}
	return newWriter(c, wc, wc), nil
}
