package diagfmt

import (
	"fmt"
	"io"

	"ember/internal/ast"
	"ember/internal/source"
)

func formatStmtKind(kind ast.StmtKind) string {
	switch kind {
	case ast.StmtExpr:
		return "Expr"
	case ast.StmtLet:
		return "Let"
	case ast.StmtReturn:
		return "Return"
	case ast.StmtBreak:
		return "Break"
	case ast.StmtContinue:
		return "Continue"
	case ast.StmtGoto:
		return "Goto"
	case ast.StmtLabel:
		return "Label"
	case ast.StmtIf:
		return "If"
	case ast.StmtWhile:
		return "While"
	case ast.StmtFor:
		return "For"
	case ast.StmtSwitch:
		return "Switch"
	case ast.StmtBlock:
		return "Block"
	default:
		return fmt.Sprintf("StmtKind(%d)", kind)
	}
}

// formatStmtPretty writes stmtID as an indented tree under prefix, the same
// "├─"/"└─" convention the item and file dumpers use.
func formatStmtPretty(w io.Writer, b *ast.Builder, strs *source.Interner, stmtID ast.StmtID, fs *source.FileSet, prefix string) error {
	if b == nil || b.Stmts == nil {
		fmt.Fprintf(w, "<no statements arena>\n")
		return nil
	}
	stmt := b.Stmts.Get(stmtID)
	if stmt == nil {
		fmt.Fprintf(w, "<nil>\n")
		return nil
	}

	fmt.Fprintf(w, "%s (span: %s)\n", formatStmtKind(stmt.Kind), formatSpan(stmt.Span, fs))

	switch stmt.Kind {
	case ast.StmtBlock:
		data, _ := b.Stmts.Block(stmtID)
		for idx, childID := range data.Stmts {
			isLast := idx == len(data.Stmts)-1
			marker, childPrefix := "├─", prefix+"│  "
			if isLast {
				marker, childPrefix = "└─", prefix+"   "
			}
			fmt.Fprintf(w, "%s%s Stmt[%d]: ", prefix, marker, idx)
			if err := formatStmtPretty(w, b, strs, childID, fs, childPrefix); err != nil {
				return err
			}
		}

	case ast.StmtLet:
		data, _ := b.Stmts.Let(stmtID)
		fields := []struct{ label, value string }{
			{"Name", lookupStringOr(strs, data.Name, "<anon>")},
			{"Mutable", fmt.Sprintf("%v", data.Mutable)},
			{"Type", formatTypeExprInline(b, strs, data.Type)},
			{"Value", formatExprSummary(b, strs, data.Value)},
		}
		writeFieldLines(w, prefix, fields)

	case ast.StmtReturn:
		data, _ := b.Stmts.Return(stmtID)
		value := "<none>"
		if data.Value.IsValid() {
			value = formatExprSummary(b, strs, data.Value)
		}
		fmt.Fprintf(w, "%s└─ Value: %s\n", prefix, value)

	case ast.StmtBreak, ast.StmtContinue:
		fmt.Fprintf(w, "%s└─ (no additional data)\n", prefix)

	case ast.StmtGoto:
		data, _ := b.Stmts.Goto(stmtID)
		fmt.Fprintf(w, "%s└─ Label: %s\n", prefix, lookupStringOr(strs, data.Label, "<label>"))

	case ast.StmtLabel:
		data, _ := b.Stmts.Label(stmtID)
		fmt.Fprintf(w, "%s└─ Name: %s\n", prefix, lookupStringOr(strs, data.Name, "<label>"))

	case ast.StmtIf:
		data, _ := b.Stmts.If(stmtID)
		fmt.Fprintf(w, "%s├─ Cond: %s\n", prefix, formatExprSummary(b, strs, data.Cond))
		if data.BindName != source.NoStringID {
			fmt.Fprintf(w, "%s├─ Bind: %s\n", prefix, lookupStringOr(strs, data.BindName, "<bind>"))
		}
		thenMarker, thenPrefix := "├─", prefix+"│  "
		if !data.Else.IsValid() {
			thenMarker, thenPrefix = "└─", prefix+"   "
		}
		fmt.Fprintf(w, "%s%s Then: ", prefix, thenMarker)
		if err := formatStmtPretty(w, b, strs, data.Then, fs, thenPrefix); err != nil {
			return err
		}
		if data.Else.IsValid() {
			fmt.Fprintf(w, "%s└─ Else: ", prefix)
			if err := formatStmtPretty(w, b, strs, data.Else, fs, prefix+"   "); err != nil {
				return err
			}
		}

	case ast.StmtWhile:
		data, _ := b.Stmts.While(stmtID)
		fmt.Fprintf(w, "%s├─ Cond: %s\n", prefix, formatExprSummary(b, strs, data.Cond))
		fmt.Fprintf(w, "%s└─ Body: ", prefix)
		if err := formatStmtPretty(w, b, strs, data.Body, fs, prefix+"   "); err != nil {
			return err
		}

	case ast.StmtFor:
		data, _ := b.Stmts.For(stmtID)
		fmt.Fprintf(w, "%s├─ Elem: %s\n", prefix, lookupStringOr(strs, data.ElemName, "<elem>"))
		if data.IndexName != source.NoStringID {
			fmt.Fprintf(w, "%s├─ Index: %s\n", prefix, lookupStringOr(strs, data.IndexName, "<index>"))
		}
		fmt.Fprintf(w, "%s├─ Iterable: %s\n", prefix, formatExprSummary(b, strs, data.Iterable))
		fmt.Fprintf(w, "%s└─ Body: ", prefix)
		if err := formatStmtPretty(w, b, strs, data.Body, fs, prefix+"   "); err != nil {
			return err
		}

	case ast.StmtSwitch:
		data, _ := b.Stmts.Switch(stmtID)
		fmt.Fprintf(w, "%s├─ Scrutinee: %s\n", prefix, formatExprSummary(b, strs, data.Scrutinee))
		for i, c := range data.Cases {
			fmt.Fprintf(w, "%s├─ Case[%d]: %s -> ", prefix, i, formatExprSummary(b, strs, c.Value))
			if err := formatStmtPretty(w, b, strs, c.Body, fs, prefix+"│  "); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%s└─ Else: ", prefix)
		if err := formatStmtPretty(w, b, strs, data.ElseBody, fs, prefix+"   "); err != nil {
			return err
		}
	}

	return nil
}

func writeFieldLines(w io.Writer, prefix string, fields []struct{ label, value string }) {
	for i, f := range fields {
		marker := "├─"
		if i == len(fields)-1 {
			marker = "└─"
		}
		fmt.Fprintf(w, "%s%s %s: %s\n", prefix, marker, f.label, f.value)
	}
}

// formatStmtJSON builds an ASTNodeOutput for stmtID, recursing into nested
// statements (block bodies, if/while/for/switch bodies).
func formatStmtJSON(b *ast.Builder, strs *source.Interner, stmtID ast.StmtID) (ASTNodeOutput, error) {
	if b == nil || b.Stmts == nil {
		return ASTNodeOutput{}, fmt.Errorf("statements arena is nil")
	}
	stmt := b.Stmts.Get(stmtID)
	if stmt == nil {
		return ASTNodeOutput{}, fmt.Errorf("statement %d not found", stmtID)
	}

	output := ASTNodeOutput{Type: "Stmt", Kind: formatStmtKind(stmt.Kind), Span: stmt.Span}

	switch stmt.Kind {
	case ast.StmtBlock:
		data, _ := b.Stmts.Block(stmtID)
		for _, childID := range data.Stmts {
			child, err := formatStmtJSON(b, strs, childID)
			if err != nil {
				return ASTNodeOutput{}, err
			}
			output.Children = append(output.Children, child)
		}

	case ast.StmtLet:
		data, _ := b.Stmts.Let(stmtID)
		output.Fields = cleanupNilFields(map[string]any{
			"name":    lookupStringOr(strs, data.Name, "<anon>"),
			"mutable": data.Mutable,
			"type":    formatTypeExprInline(b, strs, data.Type),
			"value":   formatExprInline(b, strs, data.Value),
		})

	case ast.StmtReturn:
		data, _ := b.Stmts.Return(stmtID)
		if data.Value.IsValid() {
			output.Fields = map[string]any{"value": formatExprInline(b, strs, data.Value)}
		}

	case ast.StmtGoto:
		data, _ := b.Stmts.Goto(stmtID)
		output.Fields = map[string]any{"label": lookupStringOr(strs, data.Label, "<label>")}

	case ast.StmtLabel:
		data, _ := b.Stmts.Label(stmtID)
		output.Fields = map[string]any{"name": lookupStringOr(strs, data.Name, "<label>")}

	case ast.StmtIf:
		data, _ := b.Stmts.If(stmtID)
		output.Fields = cleanupNilFields(map[string]any{
			"cond": formatExprInline(b, strs, data.Cond),
			"bind": func() any {
				if data.BindName != source.NoStringID {
					return lookupStringOr(strs, data.BindName, "")
				}
				return nil
			}(),
		})
		thenNode, err := formatStmtJSON(b, strs, data.Then)
		if err != nil {
			return ASTNodeOutput{}, err
		}
		thenNode.Fields = withRole(thenNode.Fields, "then")
		output.Children = append(output.Children, thenNode)
		if data.Else.IsValid() {
			elseNode, err := formatStmtJSON(b, strs, data.Else)
			if err != nil {
				return ASTNodeOutput{}, err
			}
			elseNode.Fields = withRole(elseNode.Fields, "else")
			output.Children = append(output.Children, elseNode)
		}

	case ast.StmtWhile:
		data, _ := b.Stmts.While(stmtID)
		output.Fields = map[string]any{"cond": formatExprInline(b, strs, data.Cond)}
		bodyNode, err := formatStmtJSON(b, strs, data.Body)
		if err != nil {
			return ASTNodeOutput{}, err
		}
		output.Children = append(output.Children, bodyNode)

	case ast.StmtFor:
		data, _ := b.Stmts.For(stmtID)
		output.Fields = cleanupNilFields(map[string]any{
			"elem": lookupStringOr(strs, data.ElemName, "<elem>"),
			"index": func() any {
				if data.IndexName != source.NoStringID {
					return lookupStringOr(strs, data.IndexName, "")
				}
				return nil
			}(),
			"iterable": formatExprInline(b, strs, data.Iterable),
		})
		bodyNode, err := formatStmtJSON(b, strs, data.Body)
		if err != nil {
			return ASTNodeOutput{}, err
		}
		output.Children = append(output.Children, bodyNode)

	case ast.StmtSwitch:
		data, _ := b.Stmts.Switch(stmtID)
		output.Fields = map[string]any{"scrutinee": formatExprInline(b, strs, data.Scrutinee)}
		for _, c := range data.Cases {
			caseNode, err := formatStmtJSON(b, strs, c.Body)
			if err != nil {
				return ASTNodeOutput{}, err
			}
			caseNode.Fields = withRole(caseNode.Fields, "case")
			if caseNode.Fields == nil {
				caseNode.Fields = map[string]any{}
			}
			caseNode.Fields["caseValue"] = formatExprInline(b, strs, c.Value)
			output.Children = append(output.Children, caseNode)
		}
		elseNode, err := formatStmtJSON(b, strs, data.ElseBody)
		if err != nil {
			return ASTNodeOutput{}, err
		}
		elseNode.Fields = withRole(elseNode.Fields, "else")
		output.Children = append(output.Children, elseNode)
	}

	return output, nil
}

func withRole(fields map[string]any, role string) map[string]any {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["role"] = role
	return fields
}
