package csv

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbracewell/mango/resource"
)

func roundTrip(t *testing.T, format CSV) {
	t.Helper()
	var sb strings.Builder
	w := format.Writer(&sb)
	require.NoError(t, w.Write([]string{"1\"\t", "2", "3"}))
	require.NoError(t, w.Write([]string{"4", "5", "6"}))
	require.NoError(t, w.WriteMap(map[string]string{"A": "1", "B": "2"}))
	require.NoError(t, w.Flush())

	r, err := format.Reader(strings.NewReader(sb.String()))
	require.NoError(t, err)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1\"\t", "2", "3"}, rows[0])
	assert.Equal(t, []string{"4", "5", "6"}, rows[1])
	assert.Equal(t, []string{"A:1", "B:2"}, rows[2])
}

func TestRoundTripCSV(t *testing.T) {
	t.Parallel()
	roundTrip(t, New())
}

func TestRoundTripTSV(t *testing.T) {
	t.Parallel()
	roundTrip(t, TSV())
}

func TestParse(t *testing.T) {
	t.Parallel()
	r, err := New().Reader(strings.NewReader(
		"a,b,c\n# skipped\n\"quoted, cell\",\"line\nbreak\",plain\n"))
	require.NoError(t, err)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
	assert.Equal(t, []string{"quoted, cell", "line\nbreak", "plain"}, rows[1])
}

func TestDoubledQuote(t *testing.T) {
	t.Parallel()
	r, err := New().Reader(strings.NewReader("\"she said \"\"hi\"\"\",x\n"))
	require.NoError(t, err)
	row, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{`she said "hi"`, "x"}, row)
}

func TestCustomFormat(t *testing.T) {
	t.Parallel()
	format := New().Delimiter('|').Quote('\'').Comment(';')
	r, err := format.Reader(strings.NewReader("; note\na|'b|c'|d\n"))
	require.NoError(t, err)
	row, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b|c", "d"}, row)
}

func TestEmptyCells(t *testing.T) {
	t.Parallel()
	r, err := New().Reader(strings.NewReader("a,,c\n,,\n"))
	require.NoError(t, err)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "", "c"}, rows[0])
	assert.Equal(t, []string{"", "", ""}, rows[1])

	r, err = New().RemoveEmptyCells().Reader(strings.NewReader("a,,c\n,,\n"))
	require.NoError(t, err)
	rows, err = r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "all-empty rows vanish")
	assert.Equal(t, []string{"a", "c"}, rows[0])
}

func TestHeaderAndRecords(t *testing.T) {
	t.Parallel()
	r, err := New().HasHeader().Reader(strings.NewReader("name,age\nalice,30\nbob,31\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, r.Header())

	rec, err := r.ReadRecord()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "alice", "age": "30"}, rec)

	rec, err = r.ReadRecord()
	require.NoError(t, err)
	assert.Equal(t, "bob", rec["name"])

	_, err = r.ReadRecord()
	assert.Equal(t, io.EOF, err)
}

func TestWriterHeader(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	w := New().Header("x", "y").Writer(&sb)
	require.NoError(t, w.Write([]string{"1", "2"}))
	require.NoError(t, w.Flush())
	assert.Equal(t, "x,y\n1,2\n", sb.String())
}

func TestCommentCellRoundTrip(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	w := New().Writer(&sb)
	require.NoError(t, w.Write([]string{"#not a comment", "v"}))
	require.NoError(t, w.Flush())

	r, err := New().Reader(strings.NewReader(sb.String()))
	require.NoError(t, err)
	row, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"#not a comment", "v"}, row)
}

func TestResourceIO(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := resource.Memory()

	w, err := New().ResourceWriter(ctx, mem)
	require.NoError(t, err)
	require.NoError(t, w.Write([]string{"a", "b"}))
	require.NoError(t, w.Close())

	r, err := New().ResourceReader(ctx, mem)
	require.NoError(t, err)
	defer r.Close()
	rows, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, rows)
}

func TestUnterminatedQuote(t *testing.T) {
	t.Parallel()
	r, err := New().Reader(strings.NewReader("\"open\n"))
	require.NoError(t, err)
	_, err = r.Read()
	assert.ErrorContains(t, err, "unterminated")
}
