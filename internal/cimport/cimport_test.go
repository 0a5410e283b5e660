package cimport

import (
	"testing"

	"ember/internal/ast"
	"ember/internal/diag"
)

func TestUnavailableAlwaysReportsUnsupported(t *testing.T) {
	var imp Importer = Unavailable{}
	b, file, diags, err := imp.Import([]byte("#include <stdio.h>"), nil, true)

	if err != nil {
		t.Fatalf("Unavailable.Import returned an error, want nil: %v", err)
	}
	if b != nil {
		t.Fatalf("Unavailable.Import returned a non-nil builder")
	}
	if file != ast.NoFileID {
		t.Fatalf("Unavailable.Import returned a valid FileID")
	}
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(diags))
	}
	if diags[0].Code != diag.CImportUnsupported || diags[0].Severity != diag.SevError {
		t.Fatalf("unexpected diagnostic: %+v", diags[0])
	}
	if len(diags[0].Notes) != 0 {
		t.Fatalf("Unavailable's diagnostic should carry no notes, got %d", len(diags[0].Notes))
	}
}
