package core

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/internal/table"
	"github.com/huangsam/lightcurve/schema"
)

// Julian Date of the Unix epoch (1970-01-01T00:00:00Z).
const (
	unixEpochJD   = 2440587.5
	secondsPerDay = 86400.0
)

// isoLayouts are tried in order. Fractional seconds are accepted after any seconds field.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// JulianDate converts t to a Julian Date in UTC. No TT or TDB offset is applied.
func JulianDate(t time.Time) float64 {
	return float64(t.Unix())/secondsPerDay + float64(t.Nanosecond())/(secondsPerDay*1e9) + unixEpochJD
}

// ParseISOTime parses an ISO 8601 timestamp. Values without a zone are UTC.
func ParseISOTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO time %q", s)
}

// parseJD accepts a numeric Julian Date or an ISO timestamp.
func parseJD(s string) (float64, error) {
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("non-finite time %q", s)
		}
		return v, nil
	}
	t, err := ParseISOTime(s)
	if err != nil {
		return 0, err
	}
	return JulianDate(t), nil
}

// columnJD decodes a time column holding Julian Dates or ISO timestamps.
func columnJD(t *table.Table, name string) ([]float64, error) {
	raw, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	jd := make([]float64, len(raw))
	for i, s := range raw {
		v, err := parseJD(s)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, i+1, err)
		}
		jd[i] = v
	}
	return jd, nil
}

// Convert reads a series with ISO timestamps and writes it with Julian Dates.
func Convert(ctx context.Context, cfg *contract.Config, svc contract.Services, filename string) (schema.ConvertResult, error) {
	start := time.Now()
	result, location, err := convert(ctx, cfg, svc.Source, filename)
	recordRun(ctx, svc.History, runRecord(cfg, schema.ConvertCommand, filename, location, result.Points, 0, start, err))
	return result, err
}

func convert(ctx context.Context, cfg *contract.Config, src contract.Source, filename string) (schema.ConvertResult, string, error) {
	result := schema.ConvertResult{Name: filename}
	t, location, err := openTable(ctx, src, filename)
	if err != nil {
		return result, location, err
	}
	if err := requireColumns(t, filename, cfg.ISOColumn, cfg.RawFluxColumn); err != nil {
		return result, location, err
	}
	if t.Len() == 0 {
		return result, location, &UnclassifiedError{Err: errNoRows}
	}

	jd, err := columnJD(t, cfg.ISOColumn)
	if err != nil {
		return result, location, unclassified(err)
	}
	flux, err := t.Floats(cfg.RawFluxColumn)
	if err != nil {
		return result, location, unclassified(err)
	}

	out, err := table.FromFloats([]string{cfg.TimeColumn, cfg.RawFluxColumn}, jd, flux)
	if err != nil {
		return result, location, unclassified(err)
	}
	out.Meta = map[string]any{
		"source":     filename,
		"time_scale": "utc",
	}

	result.OutputFile = cfg.OutputFile
	if result.OutputFile == "" {
		result.OutputFile = schema.ConvertedName(filename)
	}
	if err := writeTable(result.OutputFile, out); err != nil {
		return result, location, err
	}

	result.Points = len(jd)
	result.FirstJD = jd[0]
	result.LastJD = jd[len(jd)-1]
	return result, location, nil
}

// writeTable writes t to path in the layout implied by its extension.
func writeTable(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return unclassified(fmt.Errorf("failed to create %s: %w", path, err))
	}
	if err := table.Write(f, t, schema.DetectTableFormat(path)); err != nil {
		_ = f.Close()
		return unclassified(err)
	}
	if err := f.Close(); err != nil {
		return unclassified(fmt.Errorf("failed to close %s: %w", path, err))
	}
	return nil
}
