package schema

import (
	"path/filepath"
	"strings"
)

// Stem returns the base name of a file without its directory or extension.
// Remote keys such as "tess/lc_001.ecsv" are handled the same as local paths.
func Stem(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FoldedName returns the default output file name for a folded light curve.
func FoldedName(name string) string {
	return Stem(name) + "_folded.csv"
}

// ConvertedName returns the default output file name for a JD-converted series.
func ConvertedName(name string) string {
	return Stem(name) + "_jd.ecsv"
}

// DetectTableFormat infers the table format from a file name.
// Anything that is not ECSV is read as CSV.
func DetectTableFormat(name string) TableFormat {
	if strings.EqualFold(filepath.Ext(name), ".ecsv") {
		return ECSVTable
	}
	return CSVTable
}

// Failed reports whether the outcome is one of the failure kinds.
func (o Outcome) Failed() bool {
	return o != OutcomeOK
}

// MimeType returns the MIME type for the image format.
func (f ImageFormat) MimeType() string {
	if f == SVGImage {
		return "image/svg+xml"
	}
	return "image/png"
}
