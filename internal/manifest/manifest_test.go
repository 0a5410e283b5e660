package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte(body), 0o644); err != nil {
		t.Fatalf("write ember.toml: %v", err)
	}
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\nentry = \"main.em\"\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatalf("expected to find ember.toml above %s", nested)
	}
	want := filepath.Join(root, fileName)
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
}

func TestFindNotFound(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := Find(dir)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if ok {
		t.Fatalf("expected no manifest in an empty temp dir")
	}
}

func TestLoadDefaultsBackend(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\nentry = \"main.em\"\n")

	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if m.Package.Name != "demo" {
		t.Errorf("Package.Name = %q, want demo", m.Package.Name)
	}
	if m.Build.Backend != "llvmtext" {
		t.Errorf("Build.Backend = %q, want default llvmtext", m.Build.Backend)
	}
	if got, want := m.EntryPath(), filepath.Join(dir, "main.em"); got != want {
		t.Errorf("EntryPath() = %q, want %q", got, want)
	}
}

func TestLoadMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no package table", "[build]\nbackend = \"llvmtext\"\n"},
		{"no name", "[package]\nentry = \"main.em\"\n"},
		{"no entry", "[package]\nname = \"demo\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.body)
			if _, _, err := Load(dir); err == nil {
				t.Fatalf("expected an error for %s", tt.name)
			}
		})
	}
}

func TestLoadExplicitBackend(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\nentry = \"main.em\"\n\n[build]\nbackend = \"llvmtext\"\noutput = \"out.ll\"\n")

	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if m.Build.Output != "out.ll" {
		t.Errorf("Build.Output = %q, want out.ll", m.Build.Output)
	}
}
