// Command logprune applies the startup retention pass to a log directory
// without starting a session.
//
// Usage:
//
//	logprune [flags]
//
// Flags:
//
//	    --dir string   Log directory (default from LOG_DIR or config, ./log)
//	    --max int      Retention threshold; 0 or less disables pruning
//	    --debug        Also prune the debug subdirectory
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
