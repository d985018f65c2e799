package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kimchi/cmd/kimchic/report"
	"kimchi/internal/diag"
	"kimchi/internal/source"
	"kimchi/internal/static"
)

var staticCmd = &cobra.Command{
	Use:   "static [flags] file.static",
	Short: "Compile a static data file to JavaScript",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatic,
}

func init() {
	staticCmd.Flags().String("module", "", "dotted export path this data file is published under")
	staticCmd.Flags().String("out", "", "write generated JavaScript to this path instead of stdout")
}

func runStatic(cmd *cobra.Command, args []string) error {
	path := args[0]
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	modulePath, _ := cmd.Flags().GetString("module")
	out, _ := cmd.Flags().GetString("out")

	started := time.Now()
	f, serr := static.Load(fs, id, modulePath)
	if showTimings(cmd) {
		fmt.Fprintf(os.Stderr, "static %s: %s\n", path, time.Since(started))
	}
	if serr != nil {
		bag := diag.NewBag(1)
		bag.Add(*serr)
		report.Pretty(os.Stderr, bag, fs, report.Options{
			Color:          useColor(cmd, os.Stderr),
			Context:        2,
			MaxDiagnostics: maxDiagnostics(cmd),
		})
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}

	text := static.Generate(f, modulePath)
	if out == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if !quiet(cmd) {
		fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	}
	return os.WriteFile(out, []byte(text), 0o644)
}
