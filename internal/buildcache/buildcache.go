// Package buildcache writes a per-module build artifact to disk after
// each compile: file content hashes and diagnostic counts, for external
// tooling (incremental build systems, CI caches) to consult. It is
// write-only from this compiler's own point of view — nothing here ever
// reads a cached artifact back to skip analysis, since the semantic
// analyzer always runs to completion on every invocation.
package buildcache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Digest is a SHA-256 content hash.
type Digest [sha256.Size]byte

// HashBytes computes content's digest.
func HashBytes(content []byte) Digest {
	return Digest(sha256.Sum256(content))
}

// Record is the cached artifact for one compiled file.
type Record struct {
	Schema uint16

	Path    string
	Module  string
	Backend string

	ContentHash Digest

	ErrorCount   int
	WarningCount int
	NoteCount    int
}

const schemaVersion uint16 = 1

// NewRecord builds a Record for path with the given content and
// diagnostic counts, stamping the current schema version.
func NewRecord(path, module, backend string, content []byte, errs, warns, notes int) *Record {
	return &Record{
		Schema:       schemaVersion,
		Path:         path,
		Module:       module,
		Backend:      backend,
		ContentHash:  HashBytes(content),
		ErrorCount:   errs,
		WarningCount: warns,
		NoteCount:    notes,
	}
}

// Cache writes Records under dir/.emberc-cache/<hash>.msgpack.
type Cache struct {
	dir string
}

// Open prepares a cache rooted at filepath.Join(projectRoot, ".emberc-cache"),
// creating the directory if necessary.
func Open(projectRoot string) (*Cache, error) {
	dir := filepath.Join(projectRoot, ".emberc-cache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".msgpack")
}

// Put serializes rec and writes it atomically under the cache directory,
// keyed by rec.ContentHash. It never fails the build: a write error is
// returned for logging but callers are expected to treat the cache as
// best-effort.
func (c *Cache) Put(rec *Record) error {
	if c == nil || rec == nil {
		return nil
	}
	p := c.pathFor(rec.ContentHash)

	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(rec); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}
