package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/internal/parquet"
)

// ErrNoRuns is returned when there is nothing to export.
var ErrNoRuns = errors.New("no history runs found to export")

// Export writes every recorded run to a Parquet file and returns the row count.
func Export(ctx context.Context, store contract.HistoryStore, outputPath string) (int, error) {
	if outputPath == "" {
		return 0, errors.New("--output-file is required for export command")
	}

	runs, err := store.List(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve runs: %w", err)
	}
	if len(runs) == 0 {
		return 0, ErrNoRuns
	}

	rows := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteRunsParquet(rows, outputPath); err != nil {
		return 0, fmt.Errorf("failed to write runs: %w", err)
	}
	return len(rows), nil
}
