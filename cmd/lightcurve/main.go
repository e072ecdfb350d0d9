// Command lightcurve renders and prepares astronomical light curves.
package main

import (
	"os"

	"github.com/huangsam/lightcurve/cmd"
	"github.com/huangsam/lightcurve/internal/contract"
)

func main() {
	err := cmd.Execute()
	if shutdownErr := cmd.Shutdown(); shutdownErr != nil {
		contract.LogWarn("Failed to shut down cleanly", shutdownErr)
	}
	if err != nil {
		contract.PrintUserError(err.Error())
		os.Exit(1)
	}
}
