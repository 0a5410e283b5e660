package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ember/internal/backend"
	"ember/internal/backend/llvmtext"
	"ember/internal/buildcache"
	"ember/internal/diagfmt"
	"ember/internal/driver"
	"ember/internal/layout"
	"ember/internal/manifest"
	"ember/internal/source"
)

var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Compile an ember package and emit its lowered module",
	Long:  "Build reads ember.toml for the package's entry point, compiles it, and writes the lowered module to Build.Output or stdout.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().Bool("cache", true, "record a build-cache entry for each compiled file")
}

func runBuild(cmd *cobra.Command, args []string) error {
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
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}

	opts := driver.CompileOptions{
		MaxDiagnostics: maxDiagnostics,
		Target:         layout.X86_64LinuxGNU(),
	}
	switch m.Build.Backend {
	case "llvmtext", "":
		opts.NewBackend = func(strs *source.Interner) backend.Backend { return llvmtext.New(strs) }
	default:
		return fmt.Errorf("unsupported backend %q", m.Build.Backend)
	}
	if useCache {
		cache, err := buildcache.Open(m.Root)
		if err != nil {
			return fmt.Errorf("opening build cache: %w", err)
		}
		opts.Cache = cache
	}

	res, err := driver.Compile(m.EntryPath(), opts)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", m.EntryPath(), err)
	}

	printBag(cmd, res.Program)

	if res.Program.Bag.HasErrors() {
		return exitCodeError{
			code: res.Program.Bag.ExitCode(),
			err:  fmt.Errorf("build failed: %d diagnostic(s)", res.Program.Bag.Len()),
		}
	}

	if m.Build.Output != "" {
		if err := os.WriteFile(m.Build.Output, []byte(res.Output), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", m.Build.Output, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", m.Build.Output)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), res.Output)
	return nil
}

func printBag(cmd *cobra.Command, p *driver.Program) {
	if p.Bag.Len() == 0 {
		return
	}
	opts := diagfmt.PrettyOpts{
		Color:   useColor(cmd, os.Stderr),
		Context: 2,
	}
	diagfmt.Pretty(os.Stderr, p.Bag, p.FileSet, opts)
}
