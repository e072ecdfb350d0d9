package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/lightcurve/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(Run))
	require.NotNil(t, s)

	for _, colName := range []string{
		"run_id", "command", "filename", "location", "outcome", "message",
		"points", "started_at", "duration_ms", "base_dir", "display", "image_bytes",
	} {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col)
	}
}

func TestPointStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(Point))
	for _, colName := range []string{"name", "index", "phase", "normalized_flux"} {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func sampleRecords() []schema.RunRecord {
	started := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	return []schema.RunRecord{
		{
			RunID: "a", Command: schema.RenderCommand, Filename: "c.csv", Location: "data/c.csv",
			Outcome: schema.OutcomeOK, Points: 3, StartedAt: started, Duration: 1500 * time.Microsecond,
			BaseDir: "data", Display: schema.NoDisplay, ImageBytes: 2048,
		},
		{
			RunID: "b", Command: schema.RenderCommand, Filename: "a.csv", Location: "data/a.csv",
			Outcome: schema.OutcomeNotFound, Message: "Error: File 'a.csv' not found.", StartedAt: started.Add(time.Second),
		},
	}
}

func TestConvertRunRecords(t *testing.T) {
	rows := ConvertRunRecords(sampleRecords())
	require.Len(t, rows, 2)

	assert.Equal(t, "render", rows[0].Command)
	assert.Nil(t, rows[0].Message)
	assert.InDelta(t, 1.5, rows[0].DurationMs, 1e-9)
	assert.Equal(t, int32(2048), rows[0].ImageBytes)

	require.NotNil(t, rows[1].Message)
	assert.Equal(t, "Error: File 'a.csv' not found.", *rows[1].Message)
	assert.Equal(t, "not_found", rows[1].Outcome)
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := ConvertRunRecords(sampleRecords())
	require.NoError(t, WriteRunsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[Run](file)
	defer func() { _ = reader.Close() }()

	readData := make([]Run, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)

	for i := range data {
		assert.Equal(t, data[i].RunID, readData[i].RunID)
		assert.Equal(t, data[i].Points, readData[i].Points)
		assert.WithinDuration(t, data[i].StartedAt, readData[i].StartedAt, time.Nanosecond)
		if data[i].Message == nil {
			assert.Nil(t, readData[i].Message)
		} else {
			require.NotNil(t, readData[i].Message)
			assert.Equal(t, *data[i].Message, *readData[i].Message)
		}
	}
}

func TestWritePointsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "points.parquet")
	points := []schema.Point{{Index: 0, Phase: 0, Flux: 1}, {Index: 1, Phase: 0.25, Flux: 0.8}}
	require.NoError(t, WritePointsParquet(ConvertPoints("c.csv", points), outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[Point](file)
	defer func() { _ = reader.Close() }()
	assert.Equal(t, int64(2), reader.NumRows())

	readData := make([]Point, 2)
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n)
	assert.Equal(t, "c.csv", readData[1].Name)
	assert.Equal(t, 0.8, readData[1].NormalizedFlux)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteRunsParquet([]Run{}, outputPath))
	_, err := os.Stat(outputPath)
	assert.NoError(t, err)
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WritePointsParquet(nil, filepath.Join(t.TempDir(), "missing", "x.parquet"))
	assert.ErrorContains(t, err, "failed to create output file")
}
