package table

import (
	"strings"
	"testing"

	"github.com/huangsam/lightcurve/schema"
)

// FuzzRead makes sure arbitrary CSV and ECSV input never panics and that
// every successful read yields rectangular rows.
func FuzzRead(f *testing.F) {
	f.Add("phase,normalized_flux\n0,1\n")
	f.Add(sampleECSV)
	f.Add("# %ECSV 1.0\n# ---\n# meta: [1, 2]\njd flux\n")
	f.Add("# %ECSV\n# : : :\n")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		tbl, err := Read(strings.NewReader(input), schema.AutoTable)
		if err != nil {
			return
		}
		for i, row := range tbl.Rows {
			if len(row) != len(tbl.Columns) {
				t.Fatalf("row %d has %d fields, header has %d", i, len(row), len(tbl.Columns))
			}
		}
	})
}
