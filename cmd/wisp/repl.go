package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/wisplang/wisp/interp"
	"github.com/wisplang/wisp/parser"
)

var replConfigPath string

// replCmd starts an interactive session. Grounded on the teacher's
// repl/repl.go: a readline loop that buffers input across lines while a
// form remains unterminated, switching to a blank continuation prompt of
// the same width, then feeding one complete accumulated buffer to the
// interpreter at a time.
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Wisp session",
	Run: func(cmd *cobra.Command, args []string) {
		opts := []interp.Option{}
		if replConfigPath != "" {
			cfg, err := interp.LoadConfigFile(replConfigPath)
			if err != nil {
				fatalf("%v", err)
			}
			opts = append(opts, interp.WithConfig(cfg))
		}
		it, err := interp.New(opts...)
		if err != nil {
			fatalf("%v", err)
		}
		runRepl(it, "wisp> ")
	},
}

func runRepl(it *interp.Interp, prompt string) {
	rl, err := readline.New(prompt)
	if err != nil {
		fatalf("%v", err)
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt))

	var buf string
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buf = ""
			rl.SetPrompt(prompt)
			continue
		}
		if err != nil {
			break
		}
		if buf != "" {
			buf += "\n" + line
		} else {
			buf = line
		}
		if strings.TrimSpace(buf) == "" {
			buf = ""
			continue
		}

		_, errs := parser.Parse(buf)
		if parser.IsIncomplete(errs) {
			rl.SetPrompt(contPrompt)
			continue
		}
		rl.SetPrompt(prompt)

		for _, out := range it.Run(buf) {
			switch out.Kind {
			case interp.LineError:
				errln(out.Text)
			case interp.LineValue:
				fmt.Println(out.Text)
			case interp.LineInfo:
				fmt.Println(out.Text)
			}
		}
		buf = ""
	}
	if err != io.EOF {
		errln(err)
	}
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringVarP(&replConfigPath, "config", "c", "",
		"path to a YAML interpreter config file")
}
