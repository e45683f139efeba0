package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wisplang/wisp/ast"
	"github.com/wisplang/wisp/parser"
)

var fmtWrite bool

// fmtCmd re-emits Wisp source in its canonical printed form, one
// top-level expression per line. It never evaluates the input, so it
// works equally on plain data and on macro/special-form-laden code.
var fmtCmd = &cobra.Command{
	Use:   "fmt [file...]",
	Short: "Reformat Wisp source into its canonical form",
	Run: func(cmd *cobra.Command, args []string) {
		for _, path := range args {
			src, err := os.ReadFile(path)
			if err != nil {
				fatalf("%v", err)
			}
			exprs, errs := parser.Parse(string(src))
			if len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintln(os.Stderr, e)
				}
				os.Exit(1)
			}

			out := formatExprs(exprs)
			if fmtWrite {
				if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
					fatalf("%v", err)
				}
				continue
			}
			fmt.Print(out)
		}
	},
}

func formatExprs(exprs []ast.Expr) string {
	s := ""
	for _, e := range exprs {
		s += ast.Print(e) + "\n"
	}
	return s
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false,
		"write the reformatted source back to each file instead of printing it")
}
