// The main package for the sitescraper executable.
package main

import (
	"os"

	"github.com/aicollect/sitescraper/cmd"
)

// main defers all execution to the Cobra CLI and propagates its exit
// code, so shell callers can distinguish empty runs from interrupts.
func main() {
	os.Exit(cmd.Execute())
}
