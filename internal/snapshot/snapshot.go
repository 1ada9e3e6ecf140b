package snapshot

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/keshon/cssfix/internal/config"
	"github.com/keshon/cssfix/internal/fs"
)

const objectExt = ".bin"

// Store keeps gzip-compressed pre-clean copies of the stylesheet,
// content-addressed by xxh3-128. Identical content is stored once.
type Store struct {
	Root string // resolved state root
	FS   fs.FS  // plain view, run records and layout
	cfs  *fs.CompressedFS
}

// NewStore opens (and lays out, if needed) the store at root.
func NewStore(root string, base fs.FS) (*Store, error) {
	s := &Store{
		Root: root,
		FS:   base,
		cfs:  fs.NewCompressedFS(base),
	}

	for _, d := range []string{s.ObjectsDir(), s.RunsDir()} {
		if err := base.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir %q: %w", d, err)
		}
	}
	return s, nil
}

func (s *Store) ObjectsDir() string {
	return filepath.Join(s.Root, config.ObjectsDirName)
}

func (s *Store) RunsDir() string {
	return filepath.Join(s.Root, config.RunsDirName)
}

// HashContent returns the xxh3-128 hex digest used to address snapshots.
func HashContent(data []byte) string {
	h := xxh3.Hash128(data).Bytes()
	return hex.EncodeToString(h[:])
}

func (s *Store) objectPath(hash string) string {
	return filepath.Join(s.ObjectsDir(), hash+objectExt)
}

// Save stores data as a snapshot and returns its hash. The second result
// is false when a snapshot with identical content already existed.
func (s *Store) Save(data []byte) (string, bool, error) {
	hash := HashContent(data)
	dst := s.objectPath(hash)

	if s.FS.Exists(dst) {
		return hash, false, nil
	}

	// Compress to a temp name, then rename into place. CompressedFS only
	// compresses WriteFile, so the payload goes through it and the rename
	// through the plain FS.
	tmpPath := filepath.Join(s.ObjectsDir(), ".tmp-"+hash)
	if err := s.cfs.WriteFile(tmpPath, data, 0o644); err != nil {
		return "", false, fmt.Errorf("write snapshot %q: %w", hash, err)
	}
	if err := s.FS.Rename(tmpPath, dst); err != nil {
		_ = s.FS.Remove(tmpPath)
		return "", false, fmt.Errorf("rename snapshot %q: %w", hash, err)
	}

	return hash, true, nil
}

// Load returns the decompressed content of the snapshot with hash.
func (s *Store) Load(hash string) ([]byte, error) {
	data, err := s.cfs.ReadFile(s.objectPath(hash))
	if err != nil {
		return nil, fmt.Errorf("read snapshot %q: %w", hash, err)
	}
	return data, nil
}

// Exists reports whether a snapshot with hash is stored.
func (s *Store) Exists(hash string) bool {
	return s.FS.Exists(s.objectPath(hash))
}

// ListObjects returns all stored snapshot hashes, sorted.
func (s *Store) ListObjects() ([]string, error) {
	entries, err := s.FS.ReadDir(s.ObjectsDir())
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	var hashes []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, objectExt) {
			continue
		}
		hashes = append(hashes, strings.TrimSuffix(name, objectExt))
	}

	sort.Strings(hashes)
	return hashes, nil
}

// ResolveByPrefix finds the single snapshot hash starting with prefix.
func (s *Store) ResolveByPrefix(prefix string) (string, error) {
	hashes, err := s.ListObjects()
	if err != nil {
		return "", err
	}

	var matches []string
	for _, h := range hashes {
		if strings.HasPrefix(h, prefix) {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no snapshot matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous prefix %q matches %d snapshots", prefix, len(matches))
	}
}

// CleanupTemp removes orphaned temp files from the objects dir.
func (s *Store) CleanupTemp() error {
	entries, err := s.FS.ReadDir(s.ObjectsDir())
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "tmp-") || strings.HasPrefix(name, ".tmp-") {
			_ = s.FS.Remove(filepath.Join(s.ObjectsDir(), name))
		}
	}
	return nil
}
