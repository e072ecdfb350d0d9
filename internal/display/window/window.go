// Package window shows rendered light curves in a native fyne window.
package window

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"github.com/huangsam/lightcurve/schema"
	"github.com/rs/zerolog/log"
)

// Window displays a PNG in a fyne window and blocks until it is closed.
type Window struct {
	width  int
	height int
}

// New creates a Window sized to the rendered image.
func New(width, height int) *Window {
	return &Window{width: width, height: height}
}

// Mode returns schema.WindowDisplay.
func (w *Window) Mode() schema.DisplayMode { return schema.WindowDisplay }

// Show opens a window with the image. It returns when the window is closed
// or the context is canceled. Only one window can be shown per process.
func (w *Window) Show(ctx context.Context, title string, data []byte, format schema.ImageFormat) error {
	img, err := Decode(data, format)
	if err != nil {
		return err
	}

	a := app.NewWithID("io.github.huangsam.lightcurve")
	win := a.NewWindow(title)

	picture := canvas.NewImageFromImage(img)
	picture.FillMode = canvas.ImageFillContain
	picture.SetMinSize(fyne.NewSize(float32(w.width)/2, float32(w.height)/2))
	win.SetContent(picture)
	win.Resize(fyne.NewSize(float32(w.width), float32(w.height)))

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(a.Quit)
		case <-done:
		}
	}()

	log.Debug().Str("title", title).Msg("showing light curve window")
	win.ShowAndRun()
	return ctx.Err()
}

// Decode turns rendered bytes into an image for the window.
func Decode(data []byte, format schema.ImageFormat) (image.Image, error) {
	if format != schema.PNGImage && format != "" {
		return nil, fmt.Errorf("window display only supports png images (received %s)", format)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
