package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"ember/internal/diag"
	"ember/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func pathModeName(m PathMode) string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// Pretty renders bag's diagnostics as human-readable text, one entry per
// diagnostic: "path:line:col: SEVERITY CODE: message", an optional
// context snippet with a caret under the primary span, then any notes
// and fix suggestions opts asks for. Diagnostics render in the order
// bag.Items() returns them; call bag.Sort() first for a deterministic
// ordering.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	mode := pathModeName(opts.PathMode)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, mode)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, mode string) {
	loc, file := locate(fs, d.Primary, mode)
	sevLabel := d.Severity.String()
	if opts.Color {
		sevLabel = severityColor(d.Severity).Sprint(sevLabel)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", loc, sevLabel, d.Code.ID(), d.Message)

	if opts.Context > 0 && file != nil {
		writeContext(w, file, d.Primary, opts)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nloc, _ := locate(fs, n.Span, mode)
			label := "note"
			if opts.Color {
				label = noteColor.Sprint(label)
			}
			fmt.Fprintf(w, "  %s: %s: %s\n", label, nloc, n.Msg)
		}
	}

	if opts.ShowFixes {
		for i, fx := range d.Fixes {
			fmt.Fprintf(w, "  fix #%d: %s\n", i+1, fx.Title)
			for _, e := range fx.Edits {
				fmt.Fprintf(w, "    apply=%q\n", e.NewText)
				if opts.ShowPreview && file != nil {
					writePreview(w, fs, e)
				}
			}
		}
	}
}

// locate resolves span's file under mode and its 1-based line/column,
// returning "path:line:col" and the resolved *source.File (nil if fs or
// the file is unavailable).
func locate(fs *source.FileSet, span source.Span, mode string) (string, *source.File) {
	if fs == nil {
		return "<unknown>", nil
	}
	file := fs.Get(span.File)
	if file == nil {
		return "<unknown>", nil
	}
	start, _ := fs.Resolve(span)
	path := file.FormatPath(mode, fs.BaseDir())
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col), file
}

// writeContext prints the source line around span plus a caret line
// under span's extent, with opts.Context lines of surrounding context.
// Spans are assumed to stay within a single line, true of every span
// this compiler's lexer/parser/analyzer produce.
func writeContext(w io.Writer, file *source.File, span source.Span, opts PrettyOpts) {
	start, end := lineColOf(file, span)
	ctx := int(opts.Context)
	first := int(start.Line) - ctx
	if first < 1 {
		first = 1
	}
	last := int(end.Line) + ctx

	for ln := first; ln <= last; ln++ {
		line := file.GetLine(uint32(ln))
		if ln != int(start.Line) && line == "" {
			continue
		}
		fmt.Fprintf(w, "  %4d | %s\n", ln, line)
		if ln == int(start.Line) {
			caret := caretLine(line, start, end)
			if opts.Color {
				caret = caretColor.Sprint(caret)
			}
			fmt.Fprintf(w, "       | %s\n", caret)
		}
	}
}

func lineColOf(file *source.File, span source.Span) (source.LineCol, source.LineCol) {
	idx := file.LineIdx
	startLine := uint32(1)
	for startLine <= uint32(len(idx)) && idx[startLine-1] < span.Start {
		startLine++
	}
	var startCol uint32
	if startLine == 1 {
		startCol = span.Start + 1
	} else {
		startCol = span.Start - idx[startLine-2]
	}
	return source.LineCol{Line: startLine, Col: startCol}, source.LineCol{Line: startLine, Col: startCol + span.Len()}
}

func caretLine(line string, start, end source.LineCol) string {
	width := int(end.Col) - int(start.Col)
	if width < 1 {
		width = 1
	}
	if int(start.Col)-1 > len(line) {
		return strings.Repeat(" ", len(line)) + "^"
	}
	return strings.Repeat(" ", int(start.Col)-1) + strings.Repeat("^", width)
}

// writePreview renders a before/after pair for one fix edit, applying its
// replacement text to the source line(s) it falls on.
func writePreview(w io.Writer, fs *source.FileSet, e diag.FixEdit) {
	preview, err := buildFixEditPreview(fs, e)
	if err != nil {
		return
	}
	fmt.Fprintln(w, "  preview:")
	for _, l := range preview.before {
		fmt.Fprintf(w, "    - %s\n", l)
	}
	for _, l := range preview.after {
		fmt.Fprintf(w, "    + %s\n", l)
	}
}
