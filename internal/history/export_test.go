package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	lcparquet "github.com/huangsam/lightcurve/internal/parquet"
	"github.com/huangsam/lightcurve/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExport_SQLite(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(ctx, schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, sampleRun("r1", base, schema.OutcomeOK)))
	require.NoError(t, store.Record(ctx, sampleRun("r2", base.Add(time.Second), schema.OutcomeNotFound)))

	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	n, err := Export(ctx, store, outputPath)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[lcparquet.Run](file)
	defer func() { _ = reader.Close() }()

	rows := make([]lcparquet.Run, 2)
	read, _ := reader.Read(rows)
	require.Equal(t, 2, read)
	assert.Equal(t, "r2", rows[0].RunID)
	require.NotNil(t, rows[0].Message)
	assert.Equal(t, "Error: File 'a.csv' not found.", *rows[0].Message)
	assert.Equal(t, "r1", rows[1].RunID)
	assert.Nil(t, rows[1].Message)
	assert.InDelta(t, 1.5, rows[1].DurationMs, 1e-9)
}

func TestExport_Empty(t *testing.T) {
	store := &MockStore{}
	store.On("List", mock.Anything, 0).Return([]schema.RunRecord(nil), nil)

	_, err := Export(context.Background(), store, filepath.Join(t.TempDir(), "runs.parquet"))
	assert.True(t, errors.Is(err, ErrNoRuns))
	store.AssertExpectations(t)
}

func TestExport_ListFailure(t *testing.T) {
	store := &MockStore{}
	store.On("List", mock.Anything, 0).Return(nil, errors.New("connection reset"))

	_, err := Export(context.Background(), store, filepath.Join(t.TempDir(), "runs.parquet"))
	assert.ErrorContains(t, err, "connection reset")
}

func TestExport_RequiresPath(t *testing.T) {
	_, err := Export(context.Background(), &MockStore{}, "")
	assert.ErrorContains(t, err, "--output-file is required")
}
