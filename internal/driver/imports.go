package driver

import (
	"path/filepath"

	"ember/internal/ast"
)

// collectImportEdges scans a freshly parsed file's top-level items for
// `import` declarations and returns the edges it must follow next. Import
// paths are resolved relative to the importing file's own directory, the
// way a C #include or a relative Go import would be.
func collectImportEdges(p *Program, unit *FileUnit) []importEdge {
	file := p.Builder.Files.Get(unit.FileID)
	if file == nil {
		return nil
	}
	dir := filepath.Dir(unit.AbsPath)
	var edges []importEdge
	for _, itemID := range file.Items {
		item := p.Builder.Items.Get(itemID)
		if item == nil || item.Kind != ast.ItemImport {
			continue
		}
		data, ok := p.Builder.Items.Import(itemID)
		if !ok {
			continue
		}
		rawPath := p.Strings.MustLookup(data.Path)
		resolved := rawPath
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(dir, filepath.FromSlash(resolved))
		}
		edges = append(edges, importEdge{
			Item:  itemID,
			Path:  resolved,
			Alias: data.Alias,
			Span:  data.Span,
		})
	}
	return edges
}
