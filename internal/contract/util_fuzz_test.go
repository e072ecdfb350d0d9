package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncatePath fuzzes TruncatePath with random paths and widths.
func FuzzTruncatePath(f *testing.F) {
	f.Add("data/tess/lc_001.csv", 10)
	f.Add("", 0)
	f.Add("日本語/ファイル.csv", 5)
	f.Add("short", 100)

	f.Fuzz(func(t *testing.T, path string, width int) {
		if width > 1<<16 || width < -1<<16 {
			return
		}
		got := TruncatePath(path, width)
		if width > 3 && utf8.RuneCountInString(path) > width && utf8.RuneCountInString(got) != width {
			t.Errorf("TruncatePath(%q, %d) = %q, want %d runes", path, width, got, width)
		}
	})
}

// FuzzParseBoolString makes sure arbitrary input never panics.
func FuzzParseBoolString(f *testing.F) {
	for _, seed := range []string{"yes", "no", "1", "0", "", "TRUE"} {
		f.Add(seed)
	}
	f.Fuzz(func(_ *testing.T, s string) {
		_, _ = ParseBoolString(s)
	})
}
