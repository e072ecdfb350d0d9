package display

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/huangsam/lightcurve/schema"
	"github.com/rs/zerolog/log"
)

// Opener launches the OS handler for a file.
type Opener func(ctx context.Context, path string) error

// Viewer writes images to the temp directory and opens them with the OS viewer.
type Viewer struct {
	dir  string
	open Opener
}

// NewViewer creates a Viewer that uses the platform opener.
func NewViewer() *Viewer {
	return &Viewer{dir: os.TempDir(), open: openWithOS}
}

// NewViewerWith creates a Viewer writing into dir and launching files with open.
func NewViewerWith(dir string, open Opener) *Viewer {
	return &Viewer{dir: dir, open: open}
}

// Mode returns schema.ViewerDisplay.
func (v *Viewer) Mode() schema.DisplayMode { return schema.ViewerDisplay }

// Show writes the image to a temp file and launches the viewer on it.
func (v *Viewer) Show(ctx context.Context, _ string, image []byte, format schema.ImageFormat) error {
	if format == "" {
		format = schema.PNGImage
	}
	f, err := os.CreateTemp(v.dir, "lightcurve-*."+string(format))
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if _, err := f.Write(image); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}

	log.Debug().Str("path", f.Name()).Msg("opening image in viewer")
	if err := v.open(ctx, f.Name()); err != nil {
		return fmt.Errorf("failed to open viewer: %w", err)
	}
	return nil
}

// openerCommand returns the platform command that opens a file.
func openerCommand(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

func openWithOS(ctx context.Context, path string) error {
	name, args := openerCommand(runtime.GOOS, path)
	cmd := exec.CommandContext(ctx, name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w (%s)", name, err, out)
	}
	return nil
}
