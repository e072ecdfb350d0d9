package outwriter

import (
	"os"

	"github.com/huangsam/lightcurve/internal/contract"
	"golang.org/x/term"
)

// GetMaxTablePathWidth calculates the maximum width for file names in table output
// based on terminal width and the width already taken by the other columns.
func GetMaxTablePathWidth(cfg *contract.Config, reserved int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.TableWidth > 0 {
		termWidth = cfg.TableWidth
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for table borders, separators, and padding
	available := termWidth - reserved - 10
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
