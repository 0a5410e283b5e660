package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"ember/internal/ast"
	"ember/internal/source"
)

func formatItemKind(kind ast.ItemKind) string {
	switch kind {
	case ast.ItemFnProto:
		return "FnProto"
	case ast.ItemFnDef:
		return "FnDef"
	case ast.ItemStruct:
		return "Struct"
	case ast.ItemEnum:
		return "Enum"
	case ast.ItemVar:
		return "Var"
	case ast.ItemErrorDecl:
		return "ErrorDecl"
	case ast.ItemImport:
		return "Import"
	case ast.ItemCImport:
		return "CImport"
	default:
		return fmt.Sprintf("ItemKind(%d)", kind)
	}
}

func formatFnParamsInline(b *ast.Builder, strs *source.Interner, start ast.FnParamID, count uint32) string {
	params := b.Items.Params(start, count)
	if len(params) == 0 {
		return "()"
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		name := lookupStringOr(strs, p.Name, "_")
		parts = append(parts, fmt.Sprintf("%s: %s", name, formatTypeExprInline(b, strs, p.Type)))
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

// formatItemPretty writes a tree-style dump of itemID to w.
func formatItemPretty(w io.Writer, b *ast.Builder, strs *source.Interner, itemID ast.ItemID, fs *source.FileSet, prefix string) error {
	item := b.Items.Get(itemID)
	if item == nil {
		fmt.Fprintf(w, "<nil item>\n")
		return nil
	}

	fmt.Fprintf(w, "%s (span: %s)\n", formatItemKind(item.Kind), formatSpan(item.Span, fs))

	switch item.Kind {
	case ast.ItemFnProto:
		data, _ := b.Items.FnProto(itemID)
		writeFieldLines(w, prefix, []struct{ label, value string }{
			{"Name", lookupStringOr(strs, data.Name, "<anon>")},
			{"Visibility", visibilityLabel(data.Visibility)},
			{"Params", formatFnParamsInline(b, strs, data.ParamsStart, data.ParamsCount)},
			{"Return", formatTypeExprInline(b, strs, data.ReturnType)},
		})

	case ast.ItemFnDef:
		data, _ := b.Items.FnDef(itemID)
		fmt.Fprintf(w, "%s├─ Name: %s\n", prefix, lookupStringOr(strs, data.Proto.Name, "<anon>"))
		fmt.Fprintf(w, "%s├─ Visibility: %s\n", prefix, visibilityLabel(data.Proto.Visibility))
		fmt.Fprintf(w, "%s├─ Params: %s\n", prefix, formatFnParamsInline(b, strs, data.Proto.ParamsStart, data.Proto.ParamsCount))
		fmt.Fprintf(w, "%s├─ Return: %s\n", prefix, formatTypeExprInline(b, strs, data.Proto.ReturnType))
		fmt.Fprintf(w, "%s└─ Body: ", prefix)
		if err := formatStmtPretty(w, b, strs, data.Body, fs, prefix+"   "); err != nil {
			return err
		}

	case ast.ItemStruct:
		data, _ := b.Items.Struct(itemID)
		fmt.Fprintf(w, "%s├─ Name: %s\n", prefix, lookupStringOr(strs, data.Name, "<anon>"))
		fmt.Fprintf(w, "%s├─ Visibility: %s\n", prefix, visibilityLabel(data.Visibility))
		fields := b.Items.Fields(data.FieldsStart, data.FieldsCount)
		fmt.Fprintf(w, "%s└─ Fields:\n", prefix)
		for i, f := range fields {
			marker := "├─"
			if i == len(fields)-1 {
				marker = "└─"
			}
			fmt.Fprintf(w, "%s   %s %s: %s\n", prefix, marker, lookupStringOr(strs, f.Name, "<field>"), formatTypeExprInline(b, strs, f.Type))
		}

	case ast.ItemEnum:
		data, _ := b.Items.Enum(itemID)
		fmt.Fprintf(w, "%s├─ Name: %s\n", prefix, lookupStringOr(strs, data.Name, "<anon>"))
		fmt.Fprintf(w, "%s├─ Visibility: %s\n", prefix, visibilityLabel(data.Visibility))
		variants := b.Items.Variants(data.VariantsStart, data.VariantsCount)
		fmt.Fprintf(w, "%s└─ Variants:\n", prefix)
		for i, v := range variants {
			marker := "├─"
			if i == len(variants)-1 {
				marker = "└─"
			}
			line := lookupStringOr(strs, v.Name, "<variant>")
			if v.Payload.IsValid() {
				line += "(" + formatTypeExprInline(b, strs, v.Payload) + ")"
			}
			fmt.Fprintf(w, "%s   %s %s\n", prefix, marker, line)
		}

	case ast.ItemVar:
		data, _ := b.Items.Var(itemID)
		kind := "let"
		if data.IsConst {
			kind = "const"
		}
		writeFieldLines(w, prefix, []struct{ label, value string }{
			{"Name", lookupStringOr(strs, data.Name, "<anon>")},
			{"Kind", kind},
			{"Mutable", fmt.Sprintf("%v", data.Mutable)},
			{"Visibility", visibilityLabel(data.Visibility)},
			{"Type", formatTypeExprInline(b, strs, data.Type)},
			{"Value", formatExprSummary(b, strs, data.Value)},
		})

	case ast.ItemErrorDecl:
		data, _ := b.Items.ErrorDecl(itemID)
		names := make([]string, 0, len(data.Names))
		for _, n := range data.Names {
			names = append(names, lookupStringOr(strs, n, "<error>"))
		}
		fmt.Fprintf(w, "%s├─ Names: %s\n", prefix, strings.Join(names, ", "))
		fmt.Fprintf(w, "%s└─ Visibility: %s\n", prefix, visibilityLabel(data.Visibility))

	case ast.ItemImport:
		data, _ := b.Items.Import(itemID)
		fmt.Fprintf(w, "%s├─ Path: %s\n", prefix, lookupStringOr(strs, data.Path, "<path>"))
		alias := "<none>"
		if data.Alias != source.NoStringID {
			alias = lookupStringOr(strs, data.Alias, "<alias>")
		}
		fmt.Fprintf(w, "%s└─ Alias: %s\n", prefix, alias)

	case ast.ItemCImport:
		data, _ := b.Items.CImport(itemID)
		fmt.Fprintf(w, "%s└─ Body: ", prefix)
		if err := formatStmtPretty(w, b, strs, data.Body, fs, prefix+"   "); err != nil {
			return err
		}
	}

	return nil
}

// formatItemJSON builds an ASTNodeOutput for itemID.
func formatItemJSON(b *ast.Builder, strs *source.Interner, itemID ast.ItemID) (ASTNodeOutput, error) {
	item := b.Items.Get(itemID)
	if item == nil {
		return ASTNodeOutput{}, fmt.Errorf("item %d not found", itemID)
	}

	output := ASTNodeOutput{Type: "Item", Kind: formatItemKind(item.Kind), Span: item.Span}

	switch item.Kind {
	case ast.ItemFnProto:
		data, _ := b.Items.FnProto(itemID)
		output.Fields = map[string]any{
			"name":       lookupStringOr(strs, data.Name, "<anon>"),
			"visibility": visibilityLabel(data.Visibility),
			"params":     formatFnParamsInline(b, strs, data.ParamsStart, data.ParamsCount),
			"returnType": formatTypeExprInline(b, strs, data.ReturnType),
		}

	case ast.ItemFnDef:
		data, _ := b.Items.FnDef(itemID)
		output.Fields = map[string]any{
			"name":       lookupStringOr(strs, data.Proto.Name, "<anon>"),
			"visibility": visibilityLabel(data.Proto.Visibility),
			"params":     formatFnParamsInline(b, strs, data.Proto.ParamsStart, data.Proto.ParamsCount),
			"returnType": formatTypeExprInline(b, strs, data.Proto.ReturnType),
		}
		bodyNode, err := formatStmtJSON(b, strs, data.Body)
		if err != nil {
			return ASTNodeOutput{}, err
		}
		output.Children = append(output.Children, bodyNode)

	case ast.ItemStruct:
		data, _ := b.Items.Struct(itemID)
		fields := b.Items.Fields(data.FieldsStart, data.FieldsCount)
		fieldMaps := make([]map[string]any, 0, len(fields))
		for _, f := range fields {
			fieldMaps = append(fieldMaps, map[string]any{
				"name": lookupStringOr(strs, f.Name, "<field>"),
				"type": formatTypeExprInline(b, strs, f.Type),
			})
		}
		output.Fields = map[string]any{
			"name":       lookupStringOr(strs, data.Name, "<anon>"),
			"visibility": visibilityLabel(data.Visibility),
			"fields":     fieldMaps,
		}

	case ast.ItemEnum:
		data, _ := b.Items.Enum(itemID)
		variants := b.Items.Variants(data.VariantsStart, data.VariantsCount)
		variantMaps := make([]map[string]any, 0, len(variants))
		for _, v := range variants {
			m := map[string]any{"name": lookupStringOr(strs, v.Name, "<variant>")}
			if v.Payload.IsValid() {
				m["payload"] = formatTypeExprInline(b, strs, v.Payload)
			}
			variantMaps = append(variantMaps, m)
		}
		output.Fields = map[string]any{
			"name":       lookupStringOr(strs, data.Name, "<anon>"),
			"visibility": visibilityLabel(data.Visibility),
			"variants":   variantMaps,
		}

	case ast.ItemVar:
		data, _ := b.Items.Var(itemID)
		output.Fields = map[string]any{
			"name":       lookupStringOr(strs, data.Name, "<anon>"),
			"isConst":    data.IsConst,
			"mutable":    data.Mutable,
			"visibility": visibilityLabel(data.Visibility),
			"type":       formatTypeExprInline(b, strs, data.Type),
			"value":      formatExprInline(b, strs, data.Value),
		}

	case ast.ItemErrorDecl:
		data, _ := b.Items.ErrorDecl(itemID)
		names := make([]string, 0, len(data.Names))
		for _, n := range data.Names {
			names = append(names, lookupStringOr(strs, n, "<error>"))
		}
		output.Fields = map[string]any{
			"names":      names,
			"visibility": visibilityLabel(data.Visibility),
		}

	case ast.ItemImport:
		data, _ := b.Items.Import(itemID)
		fields := map[string]any{"path": lookupStringOr(strs, data.Path, "<path>")}
		if data.Alias != source.NoStringID {
			fields["alias"] = lookupStringOr(strs, data.Alias, "<alias>")
		}
		output.Fields = fields

	case ast.ItemCImport:
		data, _ := b.Items.CImport(itemID)
		bodyNode, err := formatStmtJSON(b, strs, data.Body)
		if err != nil {
			return ASTNodeOutput{}, err
		}
		output.Children = append(output.Children, bodyNode)
	}

	return output, nil
}
