package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect or reset the shared export-shape registry",
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every module path currently registered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range sharedRegistry.Paths() {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

var registryResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every registered module path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sharedRegistry.Clear()
		sharedRequiredArgs.Clear()
		return nil
	},
}

var registrySaveCmd = &cobra.Command{
	Use:   "save <path>",
	Short: "Snapshot the registry to a msgpack file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := sharedRegistry.Snapshot()
		if err != nil {
			return fmt.Errorf("failed to snapshot registry: %w", err)
		}
		return os.WriteFile(args[0], data, 0o644)
	},
}

var registryLoadCmd = &cobra.Command{
	Use:   "load <path>",
	Short: "Restore the registry from a msgpack file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return sharedRegistry.Restore(data)
	},
}

func init() {
	registryCmd.AddCommand(registryListCmd)
	registryCmd.AddCommand(registryResetCmd)
	registryCmd.AddCommand(registrySaveCmd)
	registryCmd.AddCommand(registryLoadCmd)
}
