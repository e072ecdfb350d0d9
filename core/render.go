package core

import (
	"bytes"
	"context"
	"time"

	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/internal/plotter"
	"github.com/huangsam/lightcurve/schema"
	"github.com/rs/zerolog/log"
)

// Render loads one light curve, plots it and hands the image to the display.
// Errors are one of *NotFoundError, *ValidationError or *UnclassifiedError.
func Render(ctx context.Context, cfg *contract.Config, svc contract.Services, filename string) (schema.RenderResult, error) {
	start := time.Now()
	result, err := render(ctx, cfg, svc, filename)
	result.Duration = time.Since(start)
	recordRun(ctx, svc.History, runRecord(cfg, schema.RenderCommand, filename, result.Location, result.Points, len(result.Image), start, err))
	return result, err
}

func render(ctx context.Context, cfg *contract.Config, svc contract.Services, filename string) (schema.RenderResult, error) {
	result := schema.RenderResult{Name: filename, Format: cfg.Format}

	lc, location, err := LoadLightCurve(ctx, cfg, svc.Source, filename)
	result.Location = location
	if err != nil {
		return result, err
	}

	image, err := RenderImage(lc, cfg)
	if err != nil {
		return result, err
	}
	result.Points = lc.Len()
	result.Image = image

	if svc.Display != nil {
		log.Debug().Str("display", string(svc.Display.Mode())).Int("bytes", len(image)).Msg("showing light curve")
		if err := svc.Display.Show(ctx, plotter.Title(filename), image, cfg.Format); err != nil {
			return result, unclassified(err)
		}
	}
	return result, nil
}

// RenderImage plots the light curve and encodes it in the configured format.
func RenderImage(lc schema.LightCurve, cfg *contract.Config) ([]byte, error) {
	c := plotter.Build(lc, plotter.Options{Width: cfg.Width, Height: cfg.Height})
	var buf bytes.Buffer
	if err := plotter.Render(c, cfg.Format, &buf); err != nil {
		return nil, unclassified(err)
	}
	return buf.Bytes(), nil
}
