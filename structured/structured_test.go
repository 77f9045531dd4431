package structured

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSample emits the document used by the writer goldens and the
// round-trip tests.
func writeSample(t *testing.T, w Writer) {
	t.Helper()
	require.NoError(t, w.BeginDocument())
	require.NoError(t, w.KeyValue("name", "mango"))
	require.NoError(t, w.KeyValue("version", 1.5))
	require.NoError(t, w.BeginObject("owner"))
	require.NoError(t, w.KeyValue("id", 7))
	require.NoError(t, w.KeyValue("active", true))
	require.NoError(t, w.EndObject())
	require.NoError(t, w.BeginArray("tags"))
	require.NoError(t, w.Value("a"))
	require.NoError(t, w.Value("b"))
	require.NoError(t, w.EndArray())
	require.NoError(t, w.EndDocument())
	require.NoError(t, w.Flush())
}

func TestJSONWriterGolden(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	writeSample(t, NewJSONWriter(&sb))
	g := goldie.New(t, goldie.WithNameSuffix(".golden"))
	g.Assert(t, "json_document", []byte(sb.String()))
}

func TestXMLWriterGolden(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	writeSample(t, NewXMLWriter(&sb))
	g := goldie.New(t, goldie.WithNameSuffix(".golden"))
	g.Assert(t, "xml_document", []byte(sb.String()))
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	writeSample(t, NewJSONWriter(&sb))

	r := NewJSONReader(strings.NewReader(sb.String()))
	et, err := r.Peek()
	require.NoError(t, err)
	assert.Equal(t, BeginDocument, et)
	require.NoError(t, r.BeginDocument())

	k, v, err := r.NextKeyValue()
	require.NoError(t, err)
	assert.Equal(t, "name", k)
	assert.Equal(t, "mango", v)

	k, v, err = r.NextKeyValue()
	require.NoError(t, err)
	assert.Equal(t, "version", k)
	assert.Equal(t, 1.5, v)

	et, err = r.Peek()
	require.NoError(t, err)
	assert.Equal(t, BeginObject, et)
	name, err := r.BeginObject("owner")
	require.NoError(t, err)
	assert.Equal(t, "owner", name)
	_, v, err = r.NextKeyValue()
	require.NoError(t, err)
	assert.Equal(t, float64(7), v)
	_, v, err = r.NextKeyValue()
	require.NoError(t, err)
	assert.Equal(t, true, v)
	require.NoError(t, r.EndObject())

	_, err = r.BeginArray("tags")
	require.NoError(t, err)
	var tags []string
	for {
		et, err := r.Peek()
		require.NoError(t, err)
		if et == EndArray {
			break
		}
		v, err := r.NextValue()
		require.NoError(t, err)
		tags = append(tags, v.(string))
	}
	require.NoError(t, r.EndArray())
	assert.Equal(t, []string{"a", "b"}, tags)

	et, err = r.Peek()
	require.NoError(t, err)
	assert.Equal(t, EndDocument, et)
	require.NoError(t, r.EndDocument())

	et, err = r.Peek()
	require.NoError(t, err)
	assert.Equal(t, EndOfInput, et)
}

func TestXMLRoundTrip(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	writeSample(t, NewXMLWriter(&sb))

	r := NewXMLReader(strings.NewReader(sb.String()))
	require.NoError(t, r.BeginDocument())

	k, v, err := r.NextKeyValue()
	require.NoError(t, err)
	assert.Equal(t, "name", k)
	assert.Equal(t, "mango", v)

	k, v, err = r.NextKeyValue()
	require.NoError(t, err)
	assert.Equal(t, "version", k)
	assert.Equal(t, "1.5", v, "xml scalars read back as strings")

	name, err := r.BeginObject("owner")
	require.NoError(t, err)
	assert.Equal(t, "owner", name)
	_, v, err = r.NextKeyValue()
	require.NoError(t, err)
	assert.Equal(t, "7", v)
	_, v, err = r.NextKeyValue()
	require.NoError(t, err)
	assert.Equal(t, "true", v)
	require.NoError(t, r.EndObject())

	_, err = r.BeginArray("tags")
	require.NoError(t, err)
	var tags []string
	for {
		et, err := r.Peek()
		require.NoError(t, err)
		if et == EndArray {
			break
		}
		v, err := r.NextValue()
		require.NoError(t, err)
		tags = append(tags, v.(string))
	}
	require.NoError(t, r.EndArray())
	assert.Equal(t, []string{"a", "b"}, tags)
	require.NoError(t, r.EndDocument())
}

func TestExpectedNameMismatch(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	writeSample(t, NewJSONWriter(&sb))
	r := NewJSONReader(strings.NewReader(sb.String()))
	require.NoError(t, r.BeginDocument())
	_, _, err := r.NextKeyValue()
	require.NoError(t, err)
	_, _, err = r.NextKeyValue()
	require.NoError(t, err)
	_, err = r.BeginObject("wrong")
	assert.ErrorContains(t, err, "wrong")
}

func TestWriterMisuse(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	w := NewJSONWriter(&sb)
	require.NoError(t, w.BeginDocument())
	assert.Error(t, w.Value("x"), "array element outside an array")
	require.NoError(t, w.BeginArray("xs"))
	assert.Error(t, w.KeyValue("k", "v"), "key inside an array")
}

func TestDumpLoad(t *testing.T) {
	t.Parallel()
	m := map[string]any{
		"A": 1.0,
		"B": 2.0,
		"C": 3.0,
		"D": []any{1.0, 2.0, 3.0},
		"E": map[string]any{"A": "B"},
	}
	s, err := DumpJSON(m)
	require.NoError(t, err)
	back, err := LoadJSON(s)
	require.NoError(t, err)
	assert.Equal(t, m, back)

	g := goldie.New(t, goldie.WithNameSuffix(".golden"))
	g.Assert(t, "dump_json", []byte(s))
}

func TestDumpNestedObjectsInArray(t *testing.T) {
	t.Parallel()
	m := map[string]any{
		"rows": []any{
			map[string]any{"x": 1.0},
			map[string]any{"x": 2.0},
		},
	}
	s, err := DumpJSON(m)
	require.NoError(t, err)
	back, err := LoadJSON(s)
	require.NoError(t, err)
	assert.Equal(t, m, back)
}
