package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/internal/parquet"
	"github.com/huangsam/lightcurve/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// historyTimeFormat is used for the started column of history tables.
const historyTimeFormat = "2006-01-02 15:04:05"

// WriteHistoryRuns outputs recorded runs, dispatching based on the output format configured.
func WriteHistoryRuns(w io.Writer, runs []schema.RunRecord, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if runs == nil {
			runs = []schema.RunRecord{}
		}
		if err := writeJSON(w, runs); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVRuns(w, runs, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return writeHistoryParquet(runs, cfg.OutputFile)
	default:
		return writeHistoryTable(w, runs, cfg, fmtFloat)
	}
	return nil
}

// writeCSVRuns writes one row per run with the same columns as the runs table.
func writeCSVRuns(w io.Writer, runs []schema.RunRecord, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"run_id", "command", "filename", "location", "outcome", "message",
		"points", "started_at", "duration_ms", "base_dir", "display", "image_bytes",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range runs {
			row := []string{
				r.RunID,
				string(r.Command),
				r.Filename,
				r.Location,
				string(r.Outcome),
				r.Message,
				fmt.Sprintf(intFmt, r.Points),
				r.StartedAt.UTC().Format(time.RFC3339Nano),
				fmtFloat(durationMillis(r.Duration)),
				r.BaseDir,
				string(r.Display),
				fmt.Sprintf(intFmt, r.ImageBytes),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeHistoryTable writes the most useful run columns as a table, newest first.
func writeHistoryTable(w io.Writer, runs []schema.RunRecord, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Started", "Command", "File", "Outcome", "Points", "Duration (ms)"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// Started + Command + Outcome + Points + Duration with padding
	pathWidth := GetMaxTablePathWidth(cfg, 65)
	var data [][]string
	for _, r := range runs {
		data = append(data, []string{
			r.StartedAt.Local().Format(historyTimeFormat),
			string(r.Command),
			contract.TruncatePath(r.Filename, pathWidth),
			outcomeLabel(r.Outcome, cfg.UseColors),
			strconv.Itoa(r.Points),
			fmtFloat(durationMillis(r.Duration)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeHistoryParquet writes runs to a Parquet file.
func writeHistoryParquet(runs []schema.RunRecord, outputFile string) error {
	if outputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	rows := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteRunsParquet(rows, outputFile); err != nil {
		return fmt.Errorf("error writing Parquet output: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote %d runs to %s\n", len(rows), outputFile)
	return nil
}

func durationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
