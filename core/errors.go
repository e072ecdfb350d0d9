package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/lightcurve/schema"
)

// ErrorKind is the closed set of failure kinds an operation can report.
type ErrorKind string

// All error kinds.
const (
	KindNotFound     ErrorKind = "not_found"
	KindValidation   ErrorKind = "validation"
	KindUnclassified ErrorKind = "unclassified"
)

// errNoRows is reported when a table has a header but no data.
var errNoRows = errors.New("light curve has no rows")

// NotFoundError means the resolved input does not exist.
type NotFoundError struct {
	Name     string // Filename as given by the caller
	Location string // Fully qualified location that was tried
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file %q not found at %s", e.Name, e.Location)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ValidationError means the input was read but does not meet the requirements
// of the operation, such as missing required columns.
type ValidationError struct {
	Name     string
	Required []string
	Missing  []string
	Reason   string // Used instead of the column message when set
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: missing required columns %s", e.Name, quoteList(e.Missing, ", "))
}

// UnclassifiedError wraps any other failure during load, render or display.
type UnclassifiedError struct {
	Err error
}

func (e *UnclassifiedError) Error() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

func (e *UnclassifiedError) Unwrap() error { return e.Err }

// unclassified wraps err unless it already carries a kind.
func unclassified(err error) error {
	if err == nil || Classify(err) != KindUnclassified {
		return err
	}
	var u *UnclassifiedError
	if errors.As(err, &u) {
		return err
	}
	return &UnclassifiedError{Err: err}
}

// Classify maps any error onto the closed set of kinds. A nil error has no kind.
func Classify(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return KindNotFound
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	return KindUnclassified
}

// OutcomeOf returns the history outcome for an operation result.
func OutcomeOf(err error) schema.Outcome {
	switch Classify(err) {
	case "":
		return schema.OutcomeOK
	case KindNotFound:
		return schema.OutcomeNotFound
	case KindValidation:
		return schema.OutcomeValidation
	default:
		return schema.OutcomeUnclassified
	}
}

// UserMessage renders the one-line message shown to a user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return fmt.Sprintf("Error: File '%s' not found.", nf.Name)
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		if ve.Reason != "" {
			return "Error: " + ve.Reason
		}
		msg := fmt.Sprintf("Error: The data file must contain %s columns", quoteList(ve.Required, " and "))
		if len(ve.Missing) > 0 {
			msg += fmt.Sprintf(" (missing: %s)", strings.Join(ve.Missing, ", "))
		}
		return msg + "."
	}
	return "An error occurred: " + err.Error()
}

func quoteList(names []string, sep string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return strings.Join(quoted, sep)
}
