package diagfmt

import (
	"fmt"

	"ember/internal/ast"
	"ember/internal/source"
)

// formatSpan renders span as "startLine:startCol-endLine:endCol" when fs can
// resolve it, falling back to raw byte offsets otherwise.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// lookupStringOr resolves id against strs, falling back when id is absent.
func lookupStringOr(strs *source.Interner, id source.StringID, fallback string) string {
	if strs == nil || id == source.NoStringID {
		if fallback != "" {
			return fallback
		}
		return "<anon>"
	}
	return strs.MustLookup(id)
}

func visibilityLabel(v ast.Visibility) string {
	return v.String()
}

// cleanupNilFields drops nil-valued entries so omitempty-style JSON output
// doesn't carry a field whose value was never set.
func cleanupNilFields(fields map[string]any) map[string]any {
	for key, value := range fields {
		if value == nil {
			delete(fields, key)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
