// Package main implements the emberc CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ember/internal/sema"
	"ember/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "emberc",
	Short: "Compiler and toolchain for the ember language",
	Long:  `emberc parses, analyzes and (optionally) lowers ember source files.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := runGuarded(); err != nil {
		if ec, ok := err.(exitCodeError); ok {
			os.Exit(ec.code)
		}
		os.Exit(1)
	}
}

// exitCodeError lets a subcommand pick its own process exit status —
// build and check use it to propagate diag.Bag.ExitCode() instead of
// the blanket 1 cobra otherwise exits with on any RunE error.
type exitCodeError struct {
	code int
	err  error
}

func (e exitCodeError) Error() string { return e.err.Error() }
func (e exitCodeError) Unwrap() error { return e.err }

// runGuarded executes the root command, turning a sema.Bug panic escaping
// a subcommand into an "internal compiler error" report and exit code 2
// instead of an unannotated stack trace — a Bug marks an analyzer
// invariant violation, not a user-facing diagnostic.
func runGuarded() (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal compiler error: %v\n", r)
			os.Exit(sema.BugExitCode)
		}
	}()
	return rootCmd.Execute()
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, out *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(out))
}
