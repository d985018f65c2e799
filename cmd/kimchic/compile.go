package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kimchi/cmd/kimchic/report"
	"kimchi/internal/compiler"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] file.km",
	Short: "Compile a KimchiLang source file to JavaScript",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().String("module", "", "dotted export path this module is published under")
	compileCmd.Flags().Bool("skip-typecheck", false, "skip the type-checking pass")
	compileCmd.Flags().Bool("skip-lint", false, "skip the lint pass")
	compileCmd.Flags().String("out", "", "write generated JavaScript to this path instead of stdout")
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	modulePath, _ := cmd.Flags().GetString("module")
	skipType, _ := cmd.Flags().GetBool("skip-typecheck")
	skipLint, _ := cmd.Flags().GetBool("skip-lint")
	out, _ := cmd.Flags().GetString("out")

	started := time.Now()
	res := compiler.Compile(src, compiler.Options{
		ModulePath:    modulePath,
		SkipTypeCheck: skipType,
		SkipLint:      skipLint,
		Registry:      sharedRegistry,
		RequiredArgs:  sharedRequiredArgs,
	})
	if showTimings(cmd) {
		fmt.Fprintf(os.Stderr, "compile %s: %s\n", path, time.Since(started))
	}

	if res.Bag.Len() > 0 {
		res.Bag.Sort()
		report.Pretty(os.Stderr, res.Bag, res.FileSet, report.Options{
			Color:          useColor(cmd, os.Stderr),
			Context:        2,
			MaxDiagnostics: maxDiagnostics(cmd),
		})
	}
	if res.Bag.HasErrors() {
		return fmt.Errorf("compilation of %s failed", path)
	}

	if out == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), res.Text)
		return err
	}
	if !quiet(cmd) {
		fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	}
	return os.WriteFile(out, []byte(res.Text), 0o644)
}
