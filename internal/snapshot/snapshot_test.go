package snapshot_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/keshon/cssfix/internal/fs"
	"github.com/keshon/cssfix/internal/snapshot"
)

func memStore(t *testing.T) (*snapshot.Store, *fs.MemoryFS) {
	t.Helper()
	mem := fs.NewMemoryFS()
	s, err := snapshot.NewStore("state", mem)
	if err != nil {
		t.Fatal(err)
	}
	return s, mem
}

func TestStore_Layout(t *testing.T) {
	s, mem := memStore(t)

	if !mem.IsDir(s.ObjectsDir()) {
		t.Fatal("objects dir not created")
	}
	if !mem.IsDir(s.RunsDir()) {
		t.Fatal("runs dir not created")
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s, _ := memStore(t)

	content := []byte("body { margin: 0; }\n")
	hash, created, err := s.Save(content)
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("first save should create the snapshot")
	}
	if hash != snapshot.HashContent(content) {
		t.Fatalf("hash mismatch: %s", hash)
	}
	if !s.Exists(hash) {
		t.Fatal("snapshot should exist after save")
	}

	got, err := s.Load(hash)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("got %q, want %q", got, content)
	}
}

func TestStore_SaveDedup(t *testing.T) {
	s, _ := memStore(t)

	content := []byte("h1 { font-size: 2em; }\n")
	h1, created1, err := s.Save(content)
	if err != nil {
		t.Fatal(err)
	}
	h2, created2, err := s.Save(content)
	if err != nil {
		t.Fatal(err)
	}

	if h1 != h2 {
		t.Fatalf("same content hashed differently: %s vs %s", h1, h2)
	}
	if !created1 || created2 {
		t.Fatalf("dedup broken: created1=%v created2=%v", created1, created2)
	}

	hashes, err := s.ListObjects()
	if err != nil {
		t.Fatal(err)
	}
	if len(hashes) != 1 {
		t.Fatalf("expected 1 object, got %d", len(hashes))
	}
}

func TestStore_SaveCompresses(t *testing.T) {
	s, mem := memStore(t)

	// Highly repetitive content compresses well
	content := bytes.Repeat([]byte(".x { color: #fff; }\n"), 500)
	hash, _, err := s.Save(content)
	if err != nil {
		t.Fatal(err)
	}

	fi, err := mem.Stat(filepath.Join(s.ObjectsDir(), hash+".bin"))
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() >= int64(len(content)) {
		t.Fatalf("stored object (%d) not smaller than content (%d)", fi.Size(), len(content))
	}
}

func TestStore_LoadMissing(t *testing.T) {
	s, _ := memStore(t)

	if _, err := s.Load("deadbeef"); err == nil {
		t.Fatal("expected error loading missing snapshot")
	}
}

func TestStore_ResolveByPrefix(t *testing.T) {
	s, _ := memStore(t)

	h1, _, err := s.Save([]byte("content one"))
	if err != nil {
		t.Fatal(err)
	}
	h2, _, err := s.Save([]byte("content two"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.ResolveByPrefix(h1[:8])
	if err != nil {
		t.Fatal(err)
	}
	if got != h1 {
		t.Fatalf("resolved %s, want %s", got, h1)
	}

	// Full hash resolves to itself
	got, err = s.ResolveByPrefix(h2)
	if err != nil {
		t.Fatal(err)
	}
	if got != h2 {
		t.Fatalf("resolved %s, want %s", got, h2)
	}

	// No match
	if _, err := s.ResolveByPrefix("zzzz"); err == nil {
		t.Fatal("expected error for unknown prefix")
	}

	// Ambiguous: empty prefix matches everything
	if _, err := s.ResolveByPrefix(""); err == nil {
		t.Fatal("expected error for ambiguous prefix")
	}
}

func TestStore_CleanupTemp(t *testing.T) {
	s, mem := memStore(t)

	h, _, err := s.Save([]byte("keep me"))
	if err != nil {
		t.Fatal(err)
	}

	orphan := filepath.ToSlash(filepath.Join(s.ObjectsDir(), ".tmp-orphan"))
	mem.WriteFile(orphan, []byte("partial"), 0o644)

	if err := s.CleanupTemp(); err != nil {
		t.Fatal(err)
	}

	if mem.Exists(orphan) {
		t.Fatal("orphaned temp file should be removed")
	}
	if !s.Exists(h) {
		t.Fatal("stored object must survive cleanup")
	}
}

func TestStore_VerifySnapshot(t *testing.T) {
	s, mem := memStore(t)

	content := []byte("p { line-height: 1.5; }\n")
	hash, _, err := s.Save(content)
	if err != nil {
		t.Fatal(err)
	}

	// OK
	status, err := s.VerifySnapshot(hash)
	if err != nil || status != snapshot.OK {
		t.Fatalf("expected OK, got %v (%v)", status, err)
	}

	// Missing
	status, err = s.VerifySnapshot("0000000000000000")
	if err != nil || status != snapshot.Missing {
		t.Fatalf("expected Missing, got %v (%v)", status, err)
	}

	// Damaged: raw garbage instead of gzip
	objPath := filepath.ToSlash(filepath.Join(s.ObjectsDir(), hash+".bin"))
	mem.WriteFile(objPath, []byte("not gzip"), 0o644)

	status, _ = s.VerifySnapshot(hash)
	if status != snapshot.Damaged {
		t.Fatalf("expected Damaged for corrupt object, got %v", status)
	}

	// Damaged: valid gzip of the wrong content
	cfs := fs.NewCompressedFS(mem)
	if err := cfs.WriteFile(objPath, []byte("swapped content"), 0o644); err != nil {
		t.Fatal(err)
	}

	status, err = s.VerifySnapshot(hash)
	if err != nil {
		t.Fatal(err)
	}
	if status != snapshot.Damaged {
		t.Fatalf("expected Damaged for hash mismatch, got %v", status)
	}
}

func TestStore_VerifyStreamsAll(t *testing.T) {
	s, _ := memStore(t)

	var hashes []string
	for _, c := range []string{"one", "two", "three"} {
		h, _, err := s.Save([]byte(c))
		if err != nil {
			t.Fatal(err)
		}
		hashes = append(hashes, h)
	}
	hashes = append(hashes, "missing-hash")

	got := map[string]snapshot.Status{}
	for check := range s.Verify(hashes, 2) {
		got[check.Hash] = check.Status
	}

	if len(got) != len(hashes) {
		t.Fatalf("expected %d checks, got %d", len(hashes), len(got))
	}
	for _, h := range hashes[:3] {
		if got[h] != snapshot.OK {
			t.Errorf("hash %s: expected OK, got %v", h, got[h])
		}
	}
	if got["missing-hash"] != snapshot.Missing {
		t.Errorf("expected Missing, got %v", got["missing-hash"])
	}
}
