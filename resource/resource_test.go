package resource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sub", "data.txt")
	r := File(path)
	assert.False(t, r.Exists(ctx))

	require.NoError(t, WriteAll(ctx, r, []byte("hello\nworld\n")))
	assert.True(t, r.Exists(ctx))
	assert.Equal(t, path, r.String())

	b, err := ReadAll(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", string(b))
}

func TestReadLines(t *testing.T) {
	t.Parallel()
	r := FromString("one\ntwo\nthree")
	var lines []string
	err := ReadLines(ctx, r, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, lines)

	err = ReadLines(ctx, r, func(string) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestMemory(t *testing.T) {
	t.Parallel()
	m := Memory()
	assert.False(t, m.Exists(ctx))
	_, err := ReadAll(ctx, m)
	require.Error(t, err)

	require.NoError(t, WriteAll(ctx, m, []byte("abc")))
	assert.True(t, m.Exists(ctx))
	assert.Equal(t, []byte("abc"), m.Contents())

	// Create replaces contents on Close
	require.NoError(t, WriteAll(ctx, m, []byte("xyz")))
	b, err := ReadAll(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, "xyz", string(b))
}

func TestTempFileUnique(t *testing.T) {
	t.Parallel()
	a := TempFile(".txt")
	b := TempFile(".txt")
	assert.NotEqual(t, a.String(), b.String())
	assert.False(t, a.Exists(ctx))
}

func TestURL(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/data" {
			http.NotFound(w, req)
			return
		}
		w.Write([]byte("remote content"))
	}))
	defer ts.Close()

	r := URL(ts.URL+"/data", ts.Client())
	assert.True(t, r.Exists(ctx))
	b, err := ReadAll(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, "remote content", string(b))

	_, err = r.Create(ctx)
	assert.Error(t, err)

	missing := URL(ts.URL+"/missing", ts.Client())
	assert.False(t, missing.Exists(ctx))
	_, err = ReadAll(ctx, missing)
	assert.Error(t, err)
}
