package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/lightcurve/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		input    schema.Outcome
		expected string
	}{
		{schema.OutcomeOK, OKValue},
		{schema.OutcomeNotFound, NotFoundValue},
		{schema.OutcomeValidation, ValidationValue},
		{schema.OutcomeUnclassified, UnclassifiedValue},
		{schema.Outcome("weird"), UnclassifiedValue},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel_NoColor(t *testing.T) {
	ApplyColorSetting(false)
	defer ApplyColorSetting(true)

	assert.Equal(t, OKValue, GetColorLabel(schema.OutcomeOK))
	assert.Equal(t, NotFoundValue, GetColorLabel(schema.OutcomeNotFound))
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.txt")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.FileExists(t, path)
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short.csv", TruncatePath("short.csv", 20))
	assert.Equal(t, "...ong/name.csv", TruncatePath("a/very/long/name.csv", 15))
	assert.Equal(t, "abcdef", TruncatePath("abcdef", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1", " true "} {
		v, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("sometimes")
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, "warn", level.String())

	level, err = ParseLogLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, "debug", level.String())

	_, err = ParseLogLevel("shouty")
	assert.Error(t, err)
}
