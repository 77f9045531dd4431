package resource

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type fileResource struct {
	path string
}

// File returns a resource backed by the file at the given path.
func File(path string) Resource {
	return &fileResource{path: path}
}

// TempFile returns a file resource with a unique name under the system temp
// directory. The file is not created until written.
func TempFile(suffix string) Resource {
	name := uuid.NewString() + suffix
	return &fileResource{path: filepath.Join(os.TempDir(), name)}
}

func (f *fileResource) Open(ctx context.Context) (io.ReadCloser, error) {
	return os.Open(f.path)
}

func (f *fileResource) Create(ctx context.Context) (io.WriteCloser, error) {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(f.path)
}

func (f *fileResource) Exists(ctx context.Context) bool {
	_, err := os.Stat(f.path)
	return err == nil
}

func (f *fileResource) String() string { return f.path }
