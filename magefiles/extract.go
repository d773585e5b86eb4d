//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract builds the CLI and runs it on $EXPORT (default export.xml),
// writing CSV files to data/.
func Extract() error {
	mg.Deps(Build)
	input := os.Getenv("EXPORT")
	if input == "" {
		input = "export.xml"
	}
	return sh.RunV("bin/"+binName, "extract", input, "-o", "data")
}
