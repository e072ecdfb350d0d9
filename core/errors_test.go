package core

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/huangsam/lightcurve/schema"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	notFound := &NotFoundError{Name: "b.csv", Location: "data/b.csv", Err: fs.ErrNotExist}
	validation := &ValidationError{Name: "c.csv", Required: []string{"phase", "normalized_flux"}, Missing: []string{"phase"}}

	tests := []struct {
		name        string
		err         error
		wantKind    ErrorKind
		wantOutcome schema.Outcome
	}{
		{"nil", nil, "", schema.OutcomeOK},
		{"not found", notFound, KindNotFound, schema.OutcomeNotFound},
		{"wrapped not found", fmt.Errorf("render: %w", notFound), KindNotFound, schema.OutcomeNotFound},
		{"validation", validation, KindValidation, schema.OutcomeValidation},
		{"unclassified", &UnclassifiedError{Err: errors.New("boom")}, KindUnclassified, schema.OutcomeUnclassified},
		{"plain error", errors.New("boom"), KindUnclassified, schema.OutcomeUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, Classify(tt.err))
			assert.Equal(t, tt.wantOutcome, OutcomeOf(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"not found", &NotFoundError{Name: "b.csv", Location: "/data/b.csv"}, "Error: File 'b.csv' not found."},
		{
			"missing columns",
			&ValidationError{Name: "c.csv", Required: []string{"phase", "normalized_flux"}, Missing: []string{"normalized_flux"}},
			"Error: The data file must contain 'phase' and 'normalized_flux' columns (missing: normalized_flux).",
		},
		{"reason", &ValidationError{Reason: "a filename is required"}, "Error: a filename is required"},
		{"unclassified", &UnclassifiedError{Err: errors.New("parse failure")}, "An error occurred: parse failure"},
		{"plain", errors.New("disk full"), "An error occurred: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestErrors_Unwrap(t *testing.T) {
	nf := &NotFoundError{Name: "b.csv", Err: fs.ErrNotExist}
	assert.True(t, errors.Is(nf, fs.ErrNotExist))

	cause := errors.New("root cause")
	u := &UnclassifiedError{Err: cause}
	assert.True(t, errors.Is(u, cause))

	var target *UnclassifiedError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", u), &target))
	assert.Equal(t, "unknown error", (&UnclassifiedError{}).Error())
}

func TestUnclassified_KeepsExistingKind(t *testing.T) {
	nf := &NotFoundError{Name: "b.csv"}
	assert.Same(t, nf, unclassified(nf))

	u := &UnclassifiedError{Err: errors.New("x")}
	assert.Same(t, u, unclassified(u))

	assert.NoError(t, unclassified(nil))

	wrapped := unclassified(errors.New("plain"))
	var target *UnclassifiedError
	assert.True(t, errors.As(wrapped, &target))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Name: "c.csv", Missing: []string{"phase", "normalized_flux"}}
	assert.Equal(t, "c.csv: missing required columns 'phase', 'normalized_flux'", err.Error())
	assert.Equal(t, `file "b.csv" not found at data/b.csv`, (&NotFoundError{Name: "b.csv", Location: "data/b.csv"}).Error())
}
