package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"kimchi/internal/version"
)

// pipelineStages names kimchic's compile pipeline in the order
// internal/compiler.Compile runs it, so `version` doubles as a quick
// reminder of what a `compile` invocation actually does.
var pipelineStages = []string{"tokenize", "parse", "check", "lint", "emit"}

// domainModules are the dependencies worth surfacing a resolved version
// for when debugging a format mismatch — a kimchi.toml that a different
// BurntSushi/toml release parses differently, or a registry snapshot
// written by a different vmihailenco/msgpack release. The rest of
// go.mod's modules (cobra, bubbletea, ...) are CLI plumbing that --help
// already documents.
var domainModules = []string{"github.com/BurntSushi/toml", "github.com/vmihailenco/msgpack/v5"}

type buildInfo struct {
	Version    string
	GitCommit  string
	GitMessage string
	BuildDate  string
	Modules    []string
}

type versionPayload struct {
	Tool       string   `json:"tool"`
	Version    string   `json:"version"`
	Stages     []string `json:"stages"`
	Registered int      `json:"registered_modules"`
	GitCommit  string   `json:"git_commit,omitempty"`
	GitMessage string   `json:"git_message,omitempty"`
	BuildDate  string   `json:"build_date,omitempty"`
	Modules    []string `json:"modules,omitempty"`
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("message", false, "include git commit message")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("deps", false, "include resolved toml/msgpack dependency versions")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show kimchic's build fingerprint and compile pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		format = strings.ToLower(format)
		switch format {
		case "pretty", "json":
			// supported
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}

		showHash, _ := cmd.Flags().GetBool("hash")
		showMessage, _ := cmd.Flags().GetBool("message")
		showDate, _ := cmd.Flags().GetBool("date")
		showDeps, _ := cmd.Flags().GetBool("deps")

		info := collectBuildInfo(showDeps)
		if format == "json" {
			return renderVersionJSON(cmd.OutOrStdout(), info, showHash, showMessage, showDate, showDeps)
		}
		renderVersionPretty(cmd.OutOrStdout(), info, showHash, showMessage, showDate, showDeps)
		return nil
	},
}

func collectBuildInfo(withDeps bool) buildInfo {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	info := buildInfo{
		Version:    v,
		GitCommit:  strings.TrimSpace(version.GitCommit),
		GitMessage: strings.TrimSpace(version.GitMessage),
		BuildDate:  strings.TrimSpace(version.BuildDate),
	}
	if withDeps {
		info.Modules = resolveDomainModuleVersions()
	}
	return info
}

// resolveDomainModuleVersions reads the module list the Go toolchain
// embeds into the binary at link time and reports the resolved version
// of each entry in domainModules.
func resolveDomainModuleVersions() []string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	resolved := make(map[string]string, len(domainModules))
	for _, dep := range bi.Deps {
		resolved[dep.Path] = dep.Version
	}
	out := make([]string, 0, len(domainModules))
	for _, path := range domainModules {
		if v, ok := resolved[path]; ok {
			out = append(out, fmt.Sprintf("%s@%s", path, v))
		}
	}
	sort.Strings(out)
	return out
}

func renderVersionPretty(out io.Writer, info buildInfo, showHash, showMessage, showDate, showDeps bool) {
	fmt.Fprintf(out, "kimchic %s\n", info.Version)
	fmt.Fprintf(out, "pipeline: %s\n", strings.Join(pipelineStages, " -> "))
	fmt.Fprintf(out, "registered modules this run: %d\n", sharedRegistry.Len())
	if showHash {
		fmt.Fprintf(out, "commit:   %s\n", valueOrUnknown(info.GitCommit))
	}
	if showMessage {
		fmt.Fprintf(out, "message:  %s\n", valueOrUnknown(info.GitMessage))
	}
	if showDate {
		fmt.Fprintf(out, "built:    %s\n", valueOrUnknown(info.BuildDate))
	}
	if showDeps {
		if len(info.Modules) == 0 {
			fmt.Fprintln(out, "deps:     unknown (binary has no embedded module info)")
		} else {
			fmt.Fprintf(out, "deps:     %s\n", strings.Join(info.Modules, ", "))
		}
	}
	if !showHash && !showMessage && !showDate && !showDeps {
		fmt.Fprintln(out, "set --hash, --message, --date, or --deps for more build trivia")
	}
}

func renderVersionJSON(out io.Writer, info buildInfo, showHash, showMessage, showDate, showDeps bool) error {
	payload := versionPayload{
		Tool:       "kimchic",
		Version:    info.Version,
		Stages:     pipelineStages,
		Registered: sharedRegistry.Len(),
	}
	if showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if showMessage {
		payload.GitMessage = valueOrUnknown(info.GitMessage)
	}
	if showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	if showDeps {
		payload.Modules = info.Modules
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
