package csv

import (
	"bufio"
	"fmt"
	"io"
)

// Reader parses rows from a delimited stream. Quoted cells may span lines;
// inside quotes the escape character takes the next rune literally and a
// doubled quote is a literal quote. Lines starting with the comment
// character are skipped.
type Reader struct {
	cfg    CSV
	in     *bufio.Reader
	header []string
	closer io.Closer
	line   int
}

func newReader(cfg CSV, r io.Reader, closer io.Closer) *Reader {
	return &Reader{
		cfg:    cfg,
		in:     bufio.NewReader(r),
		header: cfg.header,
		closer: closer,
	}
}

// Header returns the column names, from the format or the first row.
func (r *Reader) Header() []string { return r.header }

// Read returns the next row, or io.EOF when the stream is exhausted.
func (r *Reader) Read() ([]string, error) {
	for {
		row, err := r.readRow()
		if err != nil {
			return nil, err
		}
		if row == nil {
			continue // comment or blank line
		}
		if !r.cfg.keepEmpty {
			kept := row[:0]
			for _, cell := range row {
				if cell != "" {
					kept = append(kept, cell)
				}
			}
			row = kept
			if len(row) == 0 {
				continue
			}
		}
		return row, nil
	}
}

// ReadAll returns the remaining rows.
func (r *Reader) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// ReadRecord returns the next row keyed by the header. Extra cells beyond
// the header are dropped; missing cells are absent from the map.
func (r *Reader) ReadRecord() (map[string]string, error) {
	if len(r.header) == 0 {
		return nil, fmt.Errorf("csv: no header for records")
	}
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	rec := make(map[string]string, len(r.header))
	for i, name := range r.header {
		if i < len(row) {
			rec[name] = row[i]
		}
	}
	return rec, nil
}

// Close releases the underlying resource, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// readRow scans one physical row. A nil row with nil error is a skipped
// comment or blank line.
func (r *Reader) readRow() ([]string, error) {
	first, _, err := r.in.ReadRune()
	if err != nil {
		return nil, err
	}
	r.line++
	if first == r.cfg.comment {
		if err := r.skipLine(); err != nil && err != io.EOF {
			return nil, err
		}
		return nil, nil
	}
	if first == '\n' {
		return nil, nil
	}
	if first == '\r' {
		r.maybeLF()
		return nil, nil
	}
	r.in.UnreadRune()

	var (
		row    []string
		cell   []rune
		quoted bool
	)
	endCell := func() {
		row = append(row, string(cell))
		cell = cell[:0]
	}
	for {
		c, _, err := r.in.ReadRune()
		if err == io.EOF {
			if quoted {
				return nil, fmt.Errorf("csv: line %d: unterminated quote", r.line)
			}
			endCell()
			return row, nil
		}
		if err != nil {
			return nil, err
		}

		switch {
		case c == r.cfg.escape:
			next, _, nerr := r.in.ReadRune()
			if nerr != nil {
				return nil, fmt.Errorf("csv: line %d: dangling escape", r.line)
			}
			cell = append(cell, next)
		case quoted:
			switch c {
			case r.cfg.quote:
				// doubled quote is a literal quote
				next, _, nerr := r.in.ReadRune()
				if nerr == nil && next == r.cfg.quote {
					cell = append(cell, c)
					continue
				}
				if nerr == nil {
					r.in.UnreadRune()
				}
				quoted = false
			case '\n':
				r.line++
				cell = append(cell, c)
			default:
				cell = append(cell, c)
			}
		case c == r.cfg.quote && len(cell) == 0:
			quoted = true
		case c == r.cfg.delimiter:
			endCell()
		case c == '\n':
			endCell()
			return row, nil
		case c == '\r':
			r.maybeLF()
			endCell()
			return row, nil
		default:
			cell = append(cell, c)
		}
	}
}

func (r *Reader) skipLine() error {
	for {
		c, _, err := r.in.ReadRune()
		if err != nil {
			return err
		}
		if c == '\n' {
			return nil
		}
	}
}

func (r *Reader) maybeLF() {
	c, _, err := r.in.ReadRune()
	if err == nil && c != '\n' {
		r.in.UnreadRune()
	}
}
