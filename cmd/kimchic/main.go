package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kimchi/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "kimchic",
	Short: "KimchiLang compiler and toolchain",
	Long:  `kimchic compiles KimchiLang source (.km) and static data (.static) files to JavaScript`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(staticCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(versionCmd)

	// --color gates every subcommand's diagnostic/progress rendering via
	// useColor below. --quiet, --timings, and --max-diagnostics are read
	// by the individual subcommands (quiet/showTimings/maxDiagnostics)
	// rather than here, since each one decides for itself what counts as
	// "non-essential" output or a diagnostic worth truncating.
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress informational (non-diagnostic) output")
	rootCmd.PersistentFlags().Bool("timings", false, "print one line with how long the subcommand took, to stderr")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "stop rendering diagnostics after this many (0 = unlimited)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

func showTimings(cmd *cobra.Command) bool {
	t, _ := cmd.Root().PersistentFlags().GetBool("timings")
	return t
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	return n
}
