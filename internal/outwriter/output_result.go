package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/schema"
)

// WriteRenderResult reports a finished render. Text output is one status line.
func WriteRenderResult(w io.Writer, result schema.RenderResult, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(w, result)
	}
	green := highlighter(cfg.UseColors, color.FgGreen)
	_, err := fmt.Fprintf(w, "%s %s: %d points rendered as %s (%d bytes) in %v, display %s\n",
		green("✔"), result.Name, result.Points, result.Format, len(result.Image),
		result.Duration.Round(time.Millisecond), cfg.Display)
	return err
}

// WriteFoldResult reports a finished fold. Text output is one status line.
func WriteFoldResult(w io.Writer, result schema.FoldResult, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(w, result)
	}
	fmtFloat, _ := createFormatters(cfg.Precision)
	green := highlighter(cfg.UseColors, color.FgGreen)
	_, err := fmt.Fprintf(w, "%s Folded %d points from %s with period %s d and epoch %s (%s) into %s in %v\n",
		green("✔"), result.Points, result.Name, fmtFloat(result.Period), fmtFloat(result.Epoch),
		result.EpochSource, result.OutputFile, duration.Round(time.Millisecond))
	return err
}

// WriteConvertResult reports a finished conversion. Text output is one status line.
func WriteConvertResult(w io.Writer, result schema.ConvertResult, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(w, result)
	}
	fmtFloat, _ := createFormatters(cfg.Precision)
	green := highlighter(cfg.UseColors, color.FgGreen)
	_, err := fmt.Fprintf(w, "%s Converted %d points from %s (JD %s to %s) into %s in %v\n",
		green("✔"), result.Points, result.Name, fmtFloat(result.FirstJD), fmtFloat(result.LastJD),
		result.OutputFile, duration.Round(time.Millisecond))
	return err
}
