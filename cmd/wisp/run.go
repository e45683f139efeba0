package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wisplang/wisp/interp"
)

var (
	runExpression bool
	runConfigPath string
)

// runCmd runs Wisp source, either as file paths or (with -e) as literal
// expressions given directly on the command line. Grounded on the
// teacher's cmd/run.go runCmd, rebuilt against interp.Interp.Run's
// []OutputLine boundary instead of printing straight from parser.Parse.
var runCmd = &cobra.Command{
	Use:   "run [file...]",
	Short: "Run Wisp source",
	Long:  `Run Wisp source supplied as files, or as literal expressions with -e.`,
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := runReadSources(args)
		if err != nil {
			fatalf("%v", err)
		}

		opts := []interp.Option{}
		if runConfigPath != "" {
			cfg, err := interp.LoadConfigFile(runConfigPath)
			if err != nil {
				fatalf("%v", err)
			}
			opts = append(opts, interp.WithConfig(cfg))
		}
		it, err := interp.New(opts...)
		if err != nil {
			fatalf("%v", err)
		}

		failed := false
		for _, src := range sources {
			for _, line := range it.Run(src) {
				switch line.Kind {
				case interp.LineError:
					fmt.Fprintln(os.Stderr, line.Text)
					failed = true
				case interp.LineValue, interp.LineInfo:
					fmt.Println(line.Text)
				}
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

func runReadSources(args []string) ([]string, error) {
	sources := make([]string, len(args))
	if runExpression {
		copy(sources, args)
		return sources, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources[i] = string(b)
	}
	return sources, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"interpret arguments as Wisp expressions instead of file paths")
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "",
		"path to a YAML interpreter config file")
}
