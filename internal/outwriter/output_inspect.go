package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/internal/parquet"
	"github.com/huangsam/lightcurve/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteInspectResults outputs an inspection, dispatching based on the output format configured.
// Text shows the summary, CSV the points, and JSON both.
func WriteInspectResults(w io.Writer, result schema.InspectResult, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVPoints(w, result.Points, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return writeInspectParquet(result, cfg.OutputFile)
	default:
		return writeSummaryTable(w, result.Summary, cfg, fmtFloat, intFmt)
	}
	return nil
}

// writeCSVPoints writes one row per point in source row order.
func writeCSVPoints(w io.Writer, points []schema.Point, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"index", schema.DefaultPhaseColumn, schema.DefaultFluxColumn}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, p := range points {
			row := []string{fmt.Sprintf(intFmt, p.Index), fmtFloat(p.Phase), fmtFloat(p.Flux)}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeSummaryTable writes the summary as a two-column table.
func writeSummaryTable(w io.Writer, s schema.Summary, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Metric", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	bold := highlighter(cfg.UseColors, color.Bold)
	pathWidth := GetMaxTablePathWidth(cfg, 20)
	point := func(p schema.Point) string {
		return fmt.Sprintf("row %d (phase %s, flux %s)", p.Index+1, fmtFloat(p.Phase), fmtFloat(p.Flux))
	}

	data := [][]string{
		{"File", bold(contract.TruncatePath(s.Name, pathWidth))},
		{"Location", contract.TruncatePath(s.Location, pathWidth)},
		{"Points", fmt.Sprintf(intFmt, s.Points)},
		{"Phase range", fmtFloat(s.PhaseMin) + " to " + fmtFloat(s.PhaseMax)},
		{"Flux range", fmtFloat(s.FluxMin) + " to " + fmtFloat(s.FluxMax)},
		{"Flux mean", fmtFloat(s.FluxMean)},
		{"Brightest", point(s.Brightest)},
		{"Faintest", point(s.Faintest)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeInspectParquet writes the points of an inspection to a Parquet file.
func writeInspectParquet(result schema.InspectResult, outputFile string) error {
	if outputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	rows := parquet.ConvertPoints(result.Summary.Name, result.Points)
	if err := parquet.WritePointsParquet(rows, outputFile); err != nil {
		return fmt.Errorf("error writing Parquet output: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote %d points to %s\n", len(rows), outputFile)
	return nil
}
