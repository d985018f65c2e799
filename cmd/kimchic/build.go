package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"kimchi/cmd/kimchic/batch"
	"kimchi/cmd/kimchic/manifest"
	"kimchi/cmd/kimchic/report"
	"kimchi/cmd/kimchic/uiprogress"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [dir]",
	Short: "Compile every entry listed in a project's kimchi.toml",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().Int("jobs", 0, "max parallel compiles per dependency wave (0=unbounded)")
	buildCmd.Flags().Bool("no-progress", false, "disable the interactive progress display even on a terminal")
}

func runBuild(cmd *cobra.Command, args []string) error {
	startDir := "."
	if len(args) == 1 {
		startDir = args[0]
	}

	m, ok, err := manifest.Load(startDir)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(manifest.NoManifestMessage())
	}

	entries, err := m.ResolveEntries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%s: no files matched [build].entries", m.Path)
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	opts := batch.Options{
		Root:          m.Root,
		Jobs:          jobs,
		SkipTypeCheck: m.Config.Compile.SkipTypeCheck,
		SkipLint:      m.Config.Compile.SkipLint,
		Registry:      sharedRegistry,
		RequiredArgs:  sharedRequiredArgs,
	}

	started := time.Now()
	var results []batch.FileResult
	if !noProgress && isTerminal(os.Stdout) {
		results, err = runBuildWithProgress(cmd.Context(), m, entries, opts)
	} else {
		results, err = batch.Compile(cmd.Context(), entries, opts)
	}
	if showTimings(cmd) {
		fmt.Fprintf(os.Stderr, "build %s: %s\n", m.Path, time.Since(started))
	}
	if err != nil {
		return err
	}

	failed := false
	for _, r := range results {
		if r.Result.Bag.Len() == 0 {
			continue
		}
		r.Result.Bag.Sort()
		fmt.Fprintf(os.Stderr, "== %s ==\n", r.Path)
		report.Pretty(os.Stderr, r.Result.Bag, r.Result.FileSet, report.Options{
			Color:          useColor(cmd, os.Stderr),
			Context:        2,
			MaxDiagnostics: maxDiagnostics(cmd),
		})
		if r.Result.Bag.HasErrors() {
			failed = true
		}
	}

	if err := batch.WriteOutputs(results, m.OutDir()); err != nil {
		return err
	}
	if failed {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("build failed")
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "compiled %d file(s) into %s\n", len(results), m.OutDir())
	}
	return nil
}

func runBuildWithProgress(ctx context.Context, m *manifest.Manifest, entries []string, opts batch.Options) ([]batch.FileResult, error) {
	events := make(chan batch.Event, 256)
	opts.Events = events

	type outcome struct {
		results []batch.FileResult
		err     error
	}
	outcomeCh := make(chan outcome, 1)
	go func() {
		results, err := batch.Compile(ctx, entries, opts)
		outcomeCh <- outcome{results: results, err: err}
	}()

	program := tea.NewProgram(uiprogress.New("kimchic build", entries, events), tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("progress UI failed: %w", err)
	}

	out := <-outcomeCh
	return out.results, out.err
}
