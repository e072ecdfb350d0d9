package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/schema"
)

// runRecord builds the history entry for a finished operation.
func runRecord(cfg *contract.Config, cmd schema.Command, filename, location string, points, imageBytes int, start time.Time, err error) schema.RunRecord {
	return schema.RunRecord{
		RunID:      uuid.NewString(),
		Command:    cmd,
		Filename:   filename,
		Location:   location,
		Outcome:    OutcomeOf(err),
		Message:    UserMessage(err),
		Points:     points,
		StartedAt:  start.UTC(),
		Duration:   time.Since(start),
		BaseDir:    cfg.BaseDir,
		Display:    cfg.Display,
		ImageBytes: imageBytes,
	}
}

// recordRun stores rec when history is enabled. Failures never change the operation result.
func recordRun(ctx context.Context, store contract.HistoryStore, rec schema.RunRecord) {
	if store == nil {
		return
	}
	if err := store.Record(ctx, rec); err != nil {
		contract.LogWarn("Failed to record run history", err)
	}
}
