// Package schema has configs, models and constants for all parts of lightcurve.
package schema

import "time"

// LightCurve is a phase-folded series ready for plotting.
// Phase and Flux are parallel and keep the row order of the source table.
type LightCurve struct {
	Name  string    `json:"name"`  // Filename as given by the caller
	Phase []float64 `json:"phase"` // Position within the periodic cycle
	Flux  []float64 `json:"flux"`  // Brightness relative to a baseline
}

// Len returns the number of points in the light curve.
func (lc LightCurve) Len() int {
	return len(lc.Phase)
}

// Point is a single row of a light curve.
type Point struct {
	Index int     `json:"index"`
	Phase float64 `json:"phase"`
	Flux  float64 `json:"normalized_flux"`
}

// Points returns the light curve as a slice of rows.
func (lc LightCurve) Points() []Point {
	points := make([]Point, 0, lc.Len())
	for i := range lc.Phase {
		points = append(points, Point{Index: i, Phase: lc.Phase[i], Flux: lc.Flux[i]})
	}
	return points
}

// RenderResult describes a successful render.
type RenderResult struct {
	Name     string        `json:"name"`
	Location string        `json:"location"`
	Points   int           `json:"points"`
	Format   ImageFormat   `json:"format"`
	Image    []byte        `json:"-"`
	Duration time.Duration `json:"duration"`
}

// Summary holds descriptive statistics for a light curve.
type Summary struct {
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	Points    int     `json:"points"`
	PhaseMin  float64 `json:"phase_min"`
	PhaseMax  float64 `json:"phase_max"`
	FluxMin   float64 `json:"flux_min"`
	FluxMax   float64 `json:"flux_max"`
	FluxMean  float64 `json:"flux_mean"`
	Brightest Point   `json:"brightest"`
	Faintest  Point   `json:"faintest"`
}

// InspectResult bundles a summary with the underlying points.
type InspectResult struct {
	Summary Summary `json:"summary"`
	Points  []Point `json:"points"`
}

// FoldResult describes a folded light curve written to disk.
type FoldResult struct {
	Name        string  `json:"name"`
	OutputFile  string  `json:"output_file"`
	Points      int     `json:"points"`
	Period      float64 `json:"period"`
	Epoch       float64 `json:"epoch"`
	EpochSource string  `json:"epoch_source"`
}

// ConvertResult describes a time series converted to Julian Dates.
type ConvertResult struct {
	Name       string  `json:"name"`
	OutputFile string  `json:"output_file"`
	Points     int     `json:"points"`
	FirstJD    float64 `json:"first_jd"`
	LastJD     float64 `json:"last_jd"`
}
