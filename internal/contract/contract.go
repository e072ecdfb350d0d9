// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"io"

	"github.com/huangsam/lightcurve/schema"
)

// Source resolves file names against a base location and opens them.
// This allows the core logic to be tested without touching a real filesystem or bucket.
type Source interface {
	// Open returns a reader for the named file. A missing file must produce an
	// error that satisfies errors.Is(err, fs.ErrNotExist).
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Location returns the fully qualified location of the named file.
	Location(name string) string
}

// Display hands a rendered light curve to a viewing surface.
type Display interface {
	// Show presents the image. Implementations may block until the surface is dismissed.
	Show(ctx context.Context, title string, image []byte, format schema.ImageFormat) error

	// Mode returns the display mode implemented.
	Mode() schema.DisplayMode
}

// HistoryStore defines the interface for tracking invocations.
type HistoryStore interface {
	// Record stores a single invocation outcome.
	Record(ctx context.Context, rec schema.RunRecord) error

	// List returns the most recent records, newest first. A limit <= 0 returns all records.
	List(ctx context.Context, limit int) ([]schema.RunRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus(ctx context.Context) (schema.HistoryStatus, error)

	// Clear removes all records.
	Clear(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error
}

// Services bundles the collaborators an operation needs.
type Services struct {
	Source  Source
	Display Display
	History HistoryStore
}
