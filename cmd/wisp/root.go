// Command wisp is the CLI host for the language core: a run subcommand
// for batch evaluation and a repl subcommand for interactive use.
// Grounded on the teacher's cmd/run.go and repl/repl.go, restructured as
// spf13/cobra subcommands of one rootCmd the way the teacher's own
// cmd package is wired (run.go's init() calling rootCmd.AddCommand).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wisp",
	Short: "wisp is an interpreter for the Wisp language",
	Long:  `wisp runs Wisp source files or expressions, or starts an interactive REPL.`,
}

// Execute runs the root command, returning the first error any subcommand
// reports.
func Execute() error {
	return rootCmd.Execute()
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
