// Package display hands rendered light curves to a viewing surface.
package display

import (
	"context"
	"fmt"
	"sync"

	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/schema"
)

// New returns the display for a non-window mode.
// The window display needs a GUI driver and is built by the window package.
func New(mode schema.DisplayMode) (contract.Display, error) {
	switch mode {
	case schema.ViewerDisplay:
		return NewViewer(), nil
	case schema.NoDisplay:
		return None{}, nil
	default:
		return nil, fmt.Errorf("display %q is not available here", mode)
	}
}

// None discards rendered images.
type None struct{}

// Show does nothing.
func (None) Show(context.Context, string, []byte, schema.ImageFormat) error { return nil }

// Mode returns schema.NoDisplay.
func (None) Mode() schema.DisplayMode { return schema.NoDisplay }

// Capture keeps the most recent image in memory.
type Capture struct {
	mu     sync.Mutex
	Title  string
	Image  []byte
	Format schema.ImageFormat
	Calls  int
}

// Show stores a copy of the image.
func (c *Capture) Show(_ context.Context, title string, image []byte, format schema.ImageFormat) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Title = title
	c.Image = append([]byte(nil), image...)
	c.Format = format
	c.Calls++
	return nil
}

// Mode returns schema.NoDisplay since nothing is shown to the user.
func (c *Capture) Mode() schema.DisplayMode { return schema.NoDisplay }
