package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kimchi/cmd/kimchic/report"
	"kimchi/internal/diag"
	"kimchi/internal/parser"
	"kimchi/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.km",
	Short: "Parse a KimchiLang source file and report syntax errors",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	started := time.Now()
	prog, perr := parser.Parse(fs, id)
	if showTimings(cmd) {
		fmt.Fprintf(os.Stderr, "parse %s: %s\n", path, time.Since(started))
	}
	if perr != nil {
		bag := diag.NewBag(1)
		bag.Add(*perr)
		report.Pretty(os.Stderr, bag, fs, report.Options{
			Color:          useColor(cmd, os.Stderr),
			Context:        2,
			MaxDiagnostics: maxDiagnostics(cmd),
		})
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}

	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d top-level statements, no syntax errors\n", path, len(prog.Statements))
	}
	return nil
}
