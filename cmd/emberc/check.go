package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/driver"
	"ember/internal/layout"
	"ember/internal/manifest"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Analyze an ember package without lowering it",
	Long:  "Check loads and analyzes the package named by ember.toml, reporting diagnostics without emitting a backend module.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	startDir := "."
	if len(args) == 1 {
		startDir = args[0]
	}
	m, ok, err := manifest.Load(startDir)
	if err != nil {
		return fmt.Errorf("loading ember.toml: %w", err)
	}
	if !ok {
		return fmt.Errorf("no ember.toml found above %s", startDir)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	res, err := driver.Compile(m.EntryPath(), driver.CompileOptions{
		MaxDiagnostics: maxDiagnostics,
		Target:         layout.X86_64LinuxGNU(),
	})
	if err != nil {
		return fmt.Errorf("compiling %s: %w", m.EntryPath(), err)
	}

	printBag(cmd, res.Program)

	if res.Program.Bag.HasErrors() {
		return exitCodeError{
			code: res.Program.Bag.ExitCode(),
			err:  fmt.Errorf("check failed: %d diagnostic(s)", res.Program.Bag.Len()),
		}
	}
	return nil
}
