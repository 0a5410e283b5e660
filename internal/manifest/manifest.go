// Package manifest loads ember.toml, the project file that names a
// package's entry point and build settings, the way cmd/emberc's build
// and check subcommands locate it by walking upward from a start
// directory.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded ember.toml plus the filesystem location it was
// found at.
type Manifest struct {
	Path    string
	Root    string
	Package PackageConfig
	Build   BuildConfig
}

// PackageConfig is the [package] table.
type PackageConfig struct {
	Name  string `toml:"name"`
	Entry string `toml:"entry"`
}

// BuildConfig is the [build] table. Backend names the internal/backend
// implementation to invoke; currently only "llvmtext" exists. Output, if
// set, is the path the emitted module text is written to instead of
// stdout.
type BuildConfig struct {
	Backend string `toml:"backend"`
	Output  string `toml:"output"`
}

const fileName = "ember.toml"

// Find walks upward from startDir looking for ember.toml, the way a Go
// toolchain walks upward for go.mod. ok is false with a nil error when
// no manifest is found anywhere above startDir.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, fileName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses ember.toml starting from startDir.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := loadFile(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

func loadFile(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(m.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("package", "entry") || strings.TrimSpace(m.Package.Entry) == "" {
		return nil, fmt.Errorf("%s: missing [package].entry", path)
	}
	if m.Build.Backend == "" {
		m.Build.Backend = "llvmtext"
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	return &m, nil
}

// EntryPath resolves Package.Entry against Root.
func (m *Manifest) EntryPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Package.Entry))
}
