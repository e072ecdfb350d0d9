package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/lightcurve/schema"
)

// Outcome label constants.
const (
	OKValue           = "OK"
	NotFoundValue     = "Not Found"
	ValidationValue   = "Invalid"
	UnclassifiedValue = "Error"
)

// Color variables for console output.
var (
	OKColor           = color.New(color.FgGreen)              // OKColor represents a successful run.
	NotFoundColor     = color.New(color.FgYellow)             // NotFoundColor represents a missing input, not bold.
	ValidationColor   = color.New(color.FgMagenta, color.Bold) // ValidationColor represents a malformed input.
	UnclassifiedColor = color.New(color.FgRed, color.Bold)     // UnclassifiedColor represents standard danger.
	ErrorPrefixColor  = color.New(color.FgRed)
)

// GetPlainLabel returns a plain text label for a run outcome.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(outcome schema.Outcome) string {
	switch outcome {
	case schema.OutcomeOK:
		return OKValue
	case schema.OutcomeNotFound:
		return NotFoundValue
	case schema.OutcomeValidation:
		return ValidationValue
	default:
		return UnclassifiedValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(outcome schema.Outcome) string {
	text := GetPlainLabel(outcome)

	switch text {
	case OKValue:
		return OKColor.Sprint(text)
	case NotFoundValue:
		return NotFoundColor.Sprint(text)
	case ValidationValue:
		return ValidationColor.Sprint(text)
	default:
		return UnclassifiedColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".lightcurve_history.db"
	}
	return filepath.Join(homeDir, ".lightcurve_history.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ApplyColorSetting enables or disables colored output process-wide.
func ApplyColorSetting(useColors bool) {
	color.NoColor = !useColors
}

// PrintUserError writes a one-line, user-facing failure message to stderr.
func PrintUserError(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, ErrorPrefixColor.Sprint(msg))
}
