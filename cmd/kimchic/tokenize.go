package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kimchi/cmd/kimchic/report"
	"kimchi/internal/diag"
	"kimchi/internal/lexer"
	"kimchi/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.km",
	Short: "Tokenize a KimchiLang source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	started := time.Now()
	toks, terr := lexer.New(fs.Get(id)).Scan()
	if showTimings(cmd) {
		fmt.Fprintf(os.Stderr, "tokenize %s: %s\n", path, time.Since(started))
	}
	if terr != nil {
		bag := diag.NewBag(1)
		bag.Add(*terr)
		report.Pretty(os.Stderr, bag, fs, report.Options{
			Color:          useColor(cmd, os.Stderr),
			Context:        2,
			MaxDiagnostics: maxDiagnostics(cmd),
		})
		return fmt.Errorf("tokenization of %s failed", path)
	}

	for _, t := range toks {
		start, _ := fs.Resolve(t.Span)
		fmt.Fprintf(cmd.OutOrStdout(), "%d:%d\t%s\t%q\n", start.Line, start.Col, t.Kind, t.Text)
	}
	return nil
}
