package driver

import (
	"bytes"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"ember/internal/diag"
	"ember/internal/layout"
	"ember/internal/lexer"
	"ember/internal/parser"
	"ember/internal/scope"
	"ember/internal/source"
)

// readResult is the outcome of one concurrent disk read: exactly the
// normalization source.FileSet.Load performs, done off the main
// goroutine since it touches no shared arena.
type readResult struct {
	absPath string
	content []byte
	flags   source.FileFlags
	err     error
}

func readFileNormalized(path string) readResult {
	// #nosec G304 -- path is produced by import-graph discovery, not
	// taken directly from untrusted input.
	content, err := os.ReadFile(path)
	if err != nil {
		return readResult{absPath: path, err: err}
	}
	var flags source.FileFlags
	if bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}) {
		content = content[3:]
		flags |= source.FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= source.FileNormalizedCRLF
	}
	return readResult{absPath: path, content: content, flags: flags}
}

// readRoundConcurrently reads every path in paths off the main goroutine
// via errgroup, the only part of loading that may run concurrently:
// source.FileSet, ast.Builder and source.Interner all mutate unsynchronized
// shared state and must only ever be touched from the caller's goroutine.
func readRoundConcurrently(paths []string) []readResult {
	results := make([]readResult, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = readFileNormalized(path)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// LoadOptions configures entry-point loading.
type LoadOptions struct {
	MaxDiagnostics int
	Progress       chan<- ProgressEvent
}

// Load discovers and parses entryPath's transitive import graph into a
// fresh Program. Each round reads every newly-discovered path's bytes
// concurrently, then lexes and parses them one at a time on the calling
// goroutine (required, since the arenas they populate are not
// concurrency-safe). A path that fails to read is reported as
// diag.IOFileNotFound at the importing `import` statement's span (or, for
// the entry file itself, returned as a plain error) and dropped from the
// graph rather than aborting the whole load.
func Load(entryPath string, opts LoadOptions, target layout.Target) (*Program, error) {
	absEntry, err := filepath.Abs(entryPath)
	if err != nil {
		return nil, err
	}

	p := NewProgram(opts.MaxDiagnostics, target)

	type pending struct {
		absPath      string
		importerSpan source.Span
		importerUnit *FileUnit
	}

	round := []pending{{absPath: absEntry}}
	visited := map[string]bool{}

	for len(round) > 0 {
		paths := make([]string, len(round))
		for i, pd := range round {
			paths[i] = pd.absPath
			emitProgress(opts.Progress, pd.absPath, StageRead, StatusQueued)
		}
		reads := readRoundConcurrently(paths)

		var next []pending
		for i, pd := range round {
			if visited[pd.absPath] {
				continue
			}
			visited[pd.absPath] = true

			res := reads[i]
			emitProgress(opts.Progress, pd.absPath, StageRead, StatusDone)
			if res.err != nil {
				emitProgress(opts.Progress, pd.absPath, StageRead, StatusError)
				if pd.importerUnit == nil {
					return nil, res.err
				}
				diag.ReportError(p.Reporter, diag.IOFileNotFound, pd.importerSpan,
					"file not found: "+pd.absPath).Emit()
				continue
			}

			emitProgress(opts.Progress, pd.absPath, StageParse, StatusWorking)
			unit := parseIntoProgram(p, pd.absPath, res.content, res.flags)
			emitProgress(opts.Progress, pd.absPath, StageParse, StatusDone)
			edges := collectImportEdges(p, unit)
			unit.Imports = edges
			p.Files = append(p.Files, unit)
			p.ByAbsPath[pd.absPath] = unit

			for _, e := range edges {
				if !visited[e.Path] {
					next = append(next, pending{absPath: e.Path, importerSpan: e.Span, importerUnit: unit})
				}
			}
		}
		round = next
	}

	return p, nil
}

func parseIntoProgram(p *Program, absPath string, content []byte, flags source.FileFlags) *FileUnit {
	sourceID := p.FileSet.Add(absPath, content, flags)
	file := p.FileSet.Get(sourceID)

	lx := lexer.New(file, p.Reporter)
	opts := parser.Options{Reporter: diag.BagReporter{Bag: p.Bag}}
	result := parser.ParseFile(lx, p.Builder, p.Strings, opts)

	fileScope := p.Scope.NewScope(scope.KindFile, p.RootScope, scope.NoScopeID, source.Span{})

	return &FileUnit{
		Path:     absPath,
		AbsPath:  absPath,
		FileID:   result.File,
		SourceID: sourceID,
		Scope:    fileScope,
	}
}
