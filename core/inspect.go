package core

import (
	"context"
	"time"

	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/schema"
)

// Inspect loads and validates a light curve exactly like Render and summarizes it.
func Inspect(ctx context.Context, cfg *contract.Config, svc contract.Services, filename string) (schema.InspectResult, error) {
	start := time.Now()
	lc, location, err := LoadLightCurve(ctx, cfg, svc.Source, filename)
	var result schema.InspectResult
	if err == nil {
		result = schema.InspectResult{Summary: Summarize(lc), Points: lc.Points()}
		result.Summary.Location = location
	}
	recordRun(ctx, svc.History, runRecord(cfg, schema.InspectCommand, filename, location, lc.Len(), 0, start, err))
	return result, err
}

// Summarize computes descriptive statistics. Larger flux is brighter.
// Ties keep the first row.
func Summarize(lc schema.LightCurve) schema.Summary {
	s := schema.Summary{Name: lc.Name, Points: lc.Len()}
	if lc.Len() == 0 {
		return s
	}

	s.PhaseMin, s.PhaseMax = lc.Phase[0], lc.Phase[0]
	bright, faint := 0, 0
	sum := 0.0
	for i := range lc.Phase {
		s.PhaseMin = min(s.PhaseMin, lc.Phase[i])
		s.PhaseMax = max(s.PhaseMax, lc.Phase[i])
		if lc.Flux[i] > lc.Flux[bright] {
			bright = i
		}
		if lc.Flux[i] < lc.Flux[faint] {
			faint = i
		}
		sum += lc.Flux[i]
	}

	s.FluxMax = lc.Flux[bright]
	s.FluxMin = lc.Flux[faint]
	s.FluxMean = sum / float64(lc.Len())
	s.Brightest = schema.Point{Index: bright, Phase: lc.Phase[bright], Flux: lc.Flux[bright]}
	s.Faintest = schema.Point{Index: faint, Phase: lc.Phase[faint], Flux: lc.Flux[faint]}
	return s
}
