// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"time"

	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteInspect prints an inspection summary using the configured output format.
func (ow *OutWriter) WriteInspect(result schema.InspectResult, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return writeInspectParquet(result, cfg.OutputFile)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteInspectResults(w, result, cfg)
	}, "Wrote inspection results")
}

// WriteHistory prints recorded runs using the configured output format.
func (ow *OutWriter) WriteHistory(runs []schema.RunRecord, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return writeHistoryParquet(runs, cfg.OutputFile)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteHistoryRuns(w, runs, cfg)
	}, "Wrote history")
}

// WriteRender prints the outcome of a render to w.
func (ow *OutWriter) WriteRender(w io.Writer, result schema.RenderResult, cfg *contract.Config) error {
	return WriteRenderResult(w, result, cfg)
}

// WriteFold prints the outcome of a fold to w.
func (ow *OutWriter) WriteFold(w io.Writer, result schema.FoldResult, cfg *contract.Config, duration time.Duration) error {
	return WriteFoldResult(w, result, cfg, duration)
}

// WriteConvert prints the outcome of a conversion to w.
func (ow *OutWriter) WriteConvert(w io.Writer, result schema.ConvertResult, cfg *contract.Config, duration time.Duration) error {
	return WriteConvertResult(w, result, cfg, duration)
}
