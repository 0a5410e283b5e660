package driver

import (
	"fmt"
	"io"

	"ember/internal/backend"
	"ember/internal/buildcache"
	"ember/internal/diag"
	"ember/internal/diagfmt"
	"ember/internal/layout"
	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/trace"
)

// CompileOptions configures a full Compile run. NewBackend, if set, is
// called once Load has allocated the Program's string interner (a
// backend.Backend needs the same interner the compiled files were
// parsed into to resolve identifier names) — leaving it nil runs
// Compile in check-only mode, with no lowering.
type CompileOptions struct {
	MaxDiagnostics int
	Target         layout.Target
	NewBackend     func(*source.Interner) backend.Backend
	Cache          *buildcache.Cache
	Tracer         trace.Tracer // nil is treated as a no-op tracer
	Progress       chan<- ProgressEvent
}

// Result is what cmd/emberc needs once a compilation finishes: the
// compiled Program (for diagnostics rendering against its FileSet), and
// the backend's accumulated output, if a backend was configured.
type Result struct {
	Program *Program
	Output  string
}

// Compile loads entryPath's import graph, analyzes it, and — if opts.NewBackend
// is set — lowers every loaded file through it. Analysis diagnostics are
// left in Program.Bag; Compile itself only returns an error for failures
// that leave no Program to report through (a bad entry path, an
// unreadable entry file).
func Compile(entryPath string, opts CompileOptions) (*Result, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = nopTracer{}
	}

	loadSpan := trace.Begin(tracer, trace.ScopeDriver, "load", 0)
	p, err := Load(entryPath, LoadOptions{MaxDiagnostics: opts.MaxDiagnostics, Progress: opts.Progress}, opts.Target)
	loadSpan.End("")
	if err != nil {
		return nil, err
	}

	analyzeSpan := trace.Begin(tracer, trace.ScopeDriver, "analyze", loadSpan.ID())
	for _, unit := range p.Files {
		emitProgress(opts.Progress, unit.AbsPath, StageAnalyze, StatusWorking)
	}
	Analyze(p)
	for _, unit := range p.Files {
		emitProgress(opts.Progress, unit.AbsPath, StageAnalyze, StatusDone)
	}
	analyzeSpan.End("")

	res := &Result{Program: p}
	var be backend.Backend
	if opts.NewBackend != nil {
		be = opts.NewBackend(p.Strings)
	}

	if be != nil && !p.Bag.HasErrors() {
		lowerSpan := trace.Begin(tracer, trace.ScopeDriver, "lower", analyzeSpan.ID())
		sr := p.Analyzer.Result()
		for _, unit := range p.Files {
			emitProgress(opts.Progress, unit.AbsPath, StageLower, StatusWorking)
			if err := be.Emit(p.FileSet, p.Builder, unit.FileID, sr); err != nil {
				emitProgress(opts.Progress, unit.AbsPath, StageLower, StatusError)
				lowerSpan.End(err.Error())
				return res, fmt.Errorf("lowering %s: %w", unit.AbsPath, err)
			}
			emitProgress(opts.Progress, unit.AbsPath, StageLower, StatusDone)
		}
		lowerSpan.End("")
		if out, ok := be.(interface{ Output() string }); ok {
			res.Output = out.Output()
		}
	}

	if opts.Cache != nil {
		for _, unit := range p.Files {
			file := p.FileSet.Get(unit.SourceID)
			rec := buildcache.NewRecord(unit.AbsPath, "", backendName(be), file.Content,
				diagCount(p.Bag, diag.SevError), diagCount(p.Bag, diag.SevWarning), diagCount(p.Bag, diag.SevInfo))
			_ = opts.Cache.Put(rec)
		}
	}

	return res, nil
}

func backendName(b backend.Backend) string {
	if b == nil {
		return "none"
	}
	return fmt.Sprintf("%T", b)
}

func diagCount(bag *diag.Bag, sev diag.Severity) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// nopTracer satisfies trace.Tracer without allocating a real sink; used
// when CompileOptions.Tracer is left nil.
type nopTracer struct{}

func (nopTracer) Emit(*trace.Event)  {}
func (nopTracer) Flush() error       { return nil }
func (nopTracer) Close() error       { return nil }
func (nopTracer) Level() trace.Level { return trace.LevelOff }
func (nopTracer) Enabled() bool      { return false }

// TokenizeResult is one file's raw token stream plus whatever lexical
// diagnostics it produced.
type TokenizeResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes path in isolation, without parsing or resolving
// imports — the fast path cmd/emberc's `tokenize` subcommand uses to
// inspect how source text splits into tokens.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	file := fs.Get(id)
	lx := lexer.New(file, reporter)
	toks := lx.All()

	return &TokenizeResult{FileSet: fs, FileID: id, Tokens: toks, Bag: bag}, nil
}

// Render writes a TokenizeResult through diagfmt, either as the
// pretty table or as an indented JSON array.
func (r *TokenizeResult) Render(w io.Writer, asJSON bool) error {
	if asJSON {
		return diagfmt.FormatTokensJSON(w, r.Tokens)
	}
	return diagfmt.FormatTokensPretty(w, r.Tokens, r.FileSet)
}

// Dump parses path on its own, ignoring its import graph, and writes its
// AST to w via diagfmt — for cmd/emberc's `dump` subcommand, where the
// point is to inspect one file's own syntax tree rather than compile a
// program.
func Dump(w io.Writer, path string, maxDiagnostics int, asJSON bool) error {
	p := NewProgram(maxDiagnostics, layout.X86_64LinuxGNU())

	res := readFileNormalized(path)
	if res.err != nil {
		return res.err
	}
	unit := parseIntoProgram(p, path, res.content, res.flags)

	if asJSON {
		return diagfmt.FormatASTJSON(w, p.Builder, p.Strings, unit.FileID, p.FileSet)
	}
	return diagfmt.FormatASTPretty(w, p.Builder, p.Strings, unit.FileID, p.FileSet)
}
