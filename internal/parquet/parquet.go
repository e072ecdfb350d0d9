// Package parquet provides data structures and functions for exporting light curve
// points and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/lightcurve/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single recorded invocation.
// This struct maps to the lightcurve_runs database table.
type Run struct {
	RunID    string `parquet:"run_id,snappy"`
	Command  string `parquet:"command,snappy"`
	Filename string `parquet:"filename,snappy"`
	Location string `parquet:"location,snappy"`
	Outcome  string `parquet:"outcome,snappy"`

	// Message is the user-facing failure message (nullable for successful runs)
	Message *string `parquet:"message,optional,snappy"`

	Points int32 `parquet:"points,snappy"`

	// StartedAt is stored as TIMESTAMP with nanosecond precision
	StartedAt time.Time `parquet:"started_at,snappy"`

	DurationMs float64 `parquet:"duration_ms,snappy"`
	BaseDir    string  `parquet:"base_dir,snappy"`
	Display    string  `parquet:"display,snappy"`
	ImageBytes int32   `parquet:"image_bytes,snappy"`
}

// Point represents one row of a light curve.
type Point struct {
	Name           string  `parquet:"name,dict,snappy"`
	Index          int32   `parquet:"index,snappy"`
	Phase          float64 `parquet:"phase,snappy"`
	NormalizedFlux float64 `parquet:"normalized_flux,snappy"`
}

// ConvertRunRecords maps history records to Parquet rows.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	rows := make([]Run, 0, len(records))
	for _, r := range records {
		row := Run{
			RunID:      r.RunID,
			Command:    string(r.Command),
			Filename:   r.Filename,
			Location:   r.Location,
			Outcome:    string(r.Outcome),
			Points:     int32(r.Points),
			StartedAt:  r.StartedAt,
			DurationMs: float64(r.Duration) / float64(time.Millisecond),
			BaseDir:    r.BaseDir,
			Display:    string(r.Display),
			ImageBytes: int32(r.ImageBytes),
		}
		if r.Message != "" {
			msg := r.Message
			row.Message = &msg
		}
		rows = append(rows, row)
	}
	return rows
}

// ConvertPoints maps light curve points to Parquet rows.
func ConvertPoints(name string, points []schema.Point) []Point {
	rows := make([]Point, len(points))
	for i, p := range points {
		rows[i] = Point{Name: name, Index: int32(p.Index), Phase: p.Phase, NormalizedFlux: p.Flux}
	}
	return rows
}

// WriteRunsParquet writes history rows to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WritePointsParquet writes light curve points to a Parquet file.
func WritePointsParquet(data []Point, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows using struct schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
