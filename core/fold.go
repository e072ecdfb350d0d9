package core

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/internal/table"
	"github.com/huangsam/lightcurve/schema"
	"github.com/rs/zerolog/log"
)

// Epoch sources recorded on a fold.
const (
	EpochProvided = "provided"
	EpochFromData = "data"
)

var errConstantFlux = errors.New("flux is constant and cannot be normalized")

// Fold phase-folds a raw jd/flux series and writes a phase/normalized_flux table.
func Fold(ctx context.Context, cfg *contract.Config, svc contract.Services, filename string) (schema.FoldResult, error) {
	start := time.Now()
	result, location, err := fold(ctx, cfg, svc.Source, filename)
	recordRun(ctx, svc.History, runRecord(cfg, schema.FoldCommand, filename, location, result.Points, 0, start, err))
	return result, err
}

func fold(ctx context.Context, cfg *contract.Config, src contract.Source, filename string) (schema.FoldResult, string, error) {
	result := schema.FoldResult{Name: filename, Period: cfg.Period}
	if cfg.Period <= 0 || math.IsNaN(cfg.Period) || math.IsInf(cfg.Period, 0) {
		return result, "", &ValidationError{Name: filename, Reason: "a positive period in days is required to fold a light curve."}
	}

	t, location, err := openTable(ctx, src, filename)
	if err != nil {
		return result, location, err
	}
	if err := requireColumns(t, filename, cfg.TimeColumn, cfg.RawFluxColumn); err != nil {
		return result, location, err
	}
	if t.Len() == 0 {
		return result, location, &UnclassifiedError{Err: errNoRows}
	}

	jd, err := columnJD(t, cfg.TimeColumn)
	if err != nil {
		return result, location, unclassified(err)
	}
	flux, err := t.Floats(cfg.RawFluxColumn)
	if err != nil {
		return result, location, unclassified(err)
	}

	result.Epoch, result.EpochSource = EpochOf(jd, flux, cfg.Epoch)
	phase, normalized, err := FoldSeries(jd, flux, cfg.Period, result.Epoch)
	if errors.Is(err, errConstantFlux) {
		return result, location, &ValidationError{Name: filename, Reason: "the flux column is constant, so it cannot be normalized."}
	}
	if err != nil {
		return result, location, unclassified(err)
	}

	out, err := table.FromFloats([]string{cfg.PhaseColumn, cfg.FluxColumn}, phase, normalized)
	if err != nil {
		return result, location, unclassified(err)
	}
	out.Meta = map[string]any{
		"jd_min":       result.Epoch,
		"period":       cfg.Period,
		"epoch_source": result.EpochSource,
	}

	result.OutputFile = cfg.OutputFile
	if result.OutputFile == "" {
		result.OutputFile = schema.FoldedName(filename)
	}
	if err := writeTable(result.OutputFile, out); err != nil {
		return result, location, err
	}

	result.Points = len(phase)
	log.Debug().Str("file", filename).Float64("period", cfg.Period).Float64("epoch", result.Epoch).
		Str("epoch_source", result.EpochSource).Msg("folded light curve")
	return result, location, nil
}

// EpochOf returns the provided epoch, or the time of minimum flux when none is given.
func EpochOf(jd, flux []float64, provided *float64) (float64, string) {
	if provided != nil {
		return *provided, EpochProvided
	}
	lowest := 0
	for i := range flux {
		if flux[i] < flux[lowest] {
			lowest = i
		}
	}
	if len(jd) == 0 {
		return 0, EpochFromData
	}
	return jd[lowest], EpochFromData
}

// FoldSeries maps each time to a phase in [0,1) and min-max normalizes the flux.
// Phase is measured in cycles, a fraction of the period, not in days.
// The output is sorted by phase; equal phases keep their input order.
func FoldSeries(jd, flux []float64, period, epoch float64) (phase, normalized []float64, err error) {
	if len(jd) != len(flux) {
		return nil, nil, errors.New("time and flux columns differ in length")
	}
	if len(flux) == 0 {
		return nil, nil, errNoRows
	}

	lo, hi := flux[0], flux[0]
	for _, f := range flux {
		lo = min(lo, f)
		hi = max(hi, f)
	}
	if hi == lo {
		return nil, nil, errConstantFlux
	}

	order := make([]int, len(jd))
	raw := make([]float64, len(jd))
	for i := range jd {
		order[i] = i
		raw[i] = phaseOf(jd[i], period, epoch)
	}
	sort.SliceStable(order, func(a, b int) bool { return raw[order[a]] < raw[order[b]] })

	phase = make([]float64, len(order))
	normalized = make([]float64, len(order))
	for i, idx := range order {
		phase[i] = raw[idx]
		normalized[i] = (flux[idx] - lo) / (hi - lo)
	}
	return phase, normalized, nil
}

// phaseOf returns the fractional cycle count of jd relative to epoch.
func phaseOf(jd, period, epoch float64) float64 {
	cycles := (jd - epoch) / period
	p := cycles - math.Floor(cycles)
	if p >= 1 {
		return 0
	}
	return p
}
