package buildcache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHashBytesDeterministic(t *testing.T) {
	a := HashBytes([]byte("fn main() {}"))
	b := HashBytes([]byte("fn main() {}"))
	if a != b {
		t.Fatalf("HashBytes not deterministic: %x != %x", a, b)
	}

	c := HashBytes([]byte("fn main() { return; }"))
	if a == c {
		t.Fatalf("expected different hashes for different content")
	}
}

func TestCachePutWritesFile(t *testing.T) {
	root := t.TempDir()
	c, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	rec := NewRecord("main.em", "main", "llvmtext", []byte("fn main() {}"), 0, 1, 0)
	if err := c.Put(rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, ".emberc-cache"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 cache entry, got %d", len(entries))
	}
	if filepath.Ext(entries[0].Name()) != ".msgpack" {
		t.Errorf("unexpected cache file name: %s", entries[0].Name())
	}
}

func TestCachePutNilIsNoop(t *testing.T) {
	var c *Cache
	if err := c.Put(&Record{}); err != nil {
		t.Fatalf("Put on nil cache should be a no-op, got: %v", err)
	}
}
