package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ember/internal/driver"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] file.em",
	Short: "Dump the parsed syntax tree of a single ember source file",
	Long:  "Dump parses one file on its own, ignoring its import graph, and prints its AST.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runDump(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	switch format {
	case "pretty":
		return driver.Dump(os.Stdout, filePath, maxDiagnostics, false)
	case "json":
		return driver.Dump(os.Stdout, filePath, maxDiagnostics, true)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
