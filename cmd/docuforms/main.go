// Command docuforms is a small CLI for working with hybrid form documents
// offline: validating field keys, listing resolved fields, and rendering to
// HTML.
package main

import (
	"fmt"
	"os"
)

// Version information, injected at build time.
var Version = "dev"

func main() {
	rootCmd := newRootCmd()
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
