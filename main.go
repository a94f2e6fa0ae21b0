// The main package for the frontierd executable.
package main

import (
	"github.com/JakeFAU/crawl-frontier/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
