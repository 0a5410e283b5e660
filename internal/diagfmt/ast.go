package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"ember/internal/ast"
	"ember/internal/source"
)

// ASTNodeOutput is the JSON shape shared by item, statement and top-level
// file dumps: a node's own kind/span/fields plus its children in order.
type ASTNodeOutput struct {
	Type     string         `json:"type"`
	Kind     string         `json:"kind"`
	Span     source.Span    `json:"span"`
	Fields   map[string]any `json:"fields,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// ASTFileOutput is the root JSON document produced by FormatASTJSON.
type ASTFileOutput struct {
	File  string          `json:"file"`
	Items []ASTNodeOutput `json:"items"`
}

// FormatASTPretty writes an indented tree dump of fileID's items to w,
// using "├─"/"└─" connectors.
func FormatASTPretty(w io.Writer, b *ast.Builder, strs *source.Interner, fileID ast.FileID, fs *source.FileSet) error {
	file := b.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not found", fileID)
	}

	for i, itemID := range file.Items {
		marker := "├──"
		if i == len(file.Items)-1 {
			marker = "└──"
		}
		fmt.Fprintf(w, "%s Item[%d]: ", marker, i)
		if err := formatItemPretty(w, b, strs, itemID, fs, "    "); err != nil {
			return err
		}
	}
	return nil
}

// FormatASTJSON writes fileID's AST as an ASTFileOutput JSON document to w.
func FormatASTJSON(w io.Writer, b *ast.Builder, strs *source.Interner, fileID ast.FileID, fs *source.FileSet) error {
	file := b.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not found", fileID)
	}

	output := ASTFileOutput{Items: make([]ASTNodeOutput, 0, len(file.Items))}
	if fs != nil {
		if f := fs.Get(source.FileID(fileID)); f != nil {
			output.File = f.FormatPath("auto", fs.BaseDir())
		}
	}
	for _, itemID := range file.Items {
		node, err := formatItemJSON(b, strs, itemID)
		if err != nil {
			return err
		}
		output.Items = append(output.Items, node)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
