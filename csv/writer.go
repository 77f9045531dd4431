package csv

import (
	"bufio"
	"io"
	"sort"
	"strings"
)

// Writer emits delimited rows. Cells containing the delimiter, quote,
// escape, or a line break are quoted, with the quote and escape characters
// escaped inside.
type Writer struct {
	cfg         CSV
	out         *bufio.Writer
	closer      io.Closer
	wroteHeader bool
}

func newWriter(cfg CSV, w io.Writer, closer io.Closer) *Writer {
	return &Writer{cfg: cfg, out: bufio.NewWriter(w), closer: closer}
}

// Write emits one row. A configured header is written before the first
// row.
func (w *Writer) Write(row []string) error {
	if !w.wroteHeader {
		w.wroteHeader = true
		if w.cfg.hasHeader && len(w.cfg.header) > 0 {
			if err := w.writeRow(w.cfg.header); err != nil {
				return err
			}
		}
	}
	return w.writeRow(row)
}

// WriteMap emits the entries as key:value cells in key order.
func (w *Writer) WriteMap(m map[string]string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	row := make([]string, len(keys))
	for i, k := range keys {
		row[i] = k + ":" + m[k]
	}
	return w.Write(row)
}

// Flush writes buffered output to the underlying writer.
func (w *Writer) Flush() error { return w.out.Flush() }

// Close flushes and releases the underlying resource, if any.
func (w *Writer) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (w *Writer) writeRow(row []string) error {
	for i, cell := range row {
		if i > 0 {
			if _, err := w.out.WriteRune(w.cfg.delimiter); err != nil {
				return err
			}
		}
		if _, err := w.out.WriteString(w.formatCell(cell)); err != nil {
			return err
		}
	}
	if err := w.out.WriteByte('\n'); err != nil {
		return err
	}
	return nil
}

func (w *Writer) formatCell(cell string) string {
	needsQuote := strings.ContainsAny(cell, string([]rune{w.cfg.delimiter, w.cfg.quote, w.cfg.escape, '\n', '\r'})) ||
		strings.HasPrefix(cell, string(w.cfg.comment))
	if !needsQuote {
		return cell
	}
	var b strings.Builder
	b.WriteRune(w.cfg.quote)
	for _, c := range cell {
		if c == w.cfg.quote || c == w.cfg.escape {
			b.WriteRune(w.cfg.escape)
		}
		b.WriteRune(c)
	}
	b.WriteRune(w.cfg.quote)
	return b.String()
}
