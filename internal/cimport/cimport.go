// Package cimport is the C-header importer boundary: parsing a
// C header into Ember declarations is an external collaborator's job,
// not this compiler's; this package only defines the interface the
// analyzer/driver call through and the stub that answers every call
// until a real importer is wired in.
package cimport

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
)

// Importer turns a C header's bytes into Ember declarations. includePaths
// resolves #include directives against; warnings controls whether
// importer-internal warnings (unsupported macro shapes, skipped
// declarations) are included in the returned diagnostics or suppressed.
type Importer interface {
	Import(buffer []byte, includePaths []string, warnings bool) (*ast.Builder, ast.FileID, []diag.Diagnostic, error)
}

// Unavailable is the shipped Importer: it always fails with a single
// structural diagnostic, since no C header parser is implemented here.
type Unavailable struct{}

func (Unavailable) Import(buffer []byte, includePaths []string, warnings bool) (*ast.Builder, ast.FileID, []diag.Diagnostic, error) {
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.CImportUnsupported,
		Message:  "C import unsupported in this build",
		Primary:  source.Span{},
	}
	return nil, ast.NoFileID, []diag.Diagnostic{d}, nil
}
