package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Local reads files from a directory on disk.
type Local struct {
	baseDir string
}

// NewLocal creates a Local source rooted at baseDir.
func NewLocal(baseDir string) *Local {
	return &Local{baseDir: baseDir}
}

// Location joins the base directory and the file name.
func (l *Local) Location(name string) string {
	return filepath.Join(l.baseDir, name)
}

// Open opens the named file for reading.
func (l *Local) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.Location(name))
	if err != nil {
		return nil, err
	}
	return f, nil
}
