package target

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/keshon/cssfix/internal/config"
	"github.com/keshon/cssfix/internal/fs"
)

// Target is the one stylesheet this tool manages.
type Target struct {
	Root string // project root
	Path string // full path to the stylesheet
	FS   fs.FS
}

// New creates a Target rooted at the given project root.
func New(root string, fsys fs.FS) *Target {
	return &Target{
		Root: root,
		Path: filepath.Join(root, filepath.FromSlash(config.TargetFile)),
		FS:   fsys,
	}
}

// Rel returns the project-relative path used in messages.
func (t *Target) Rel() string {
	return config.TargetFile
}

func (t *Target) Exists() bool {
	return t.FS.Exists(t.Path)
}

// Stat returns file info for the stylesheet.
func (t *Target) Stat() (os.FileInfo, error) {
	return t.FS.Stat(t.Path)
}

// Load reads the entire stylesheet into memory.
func (t *Target) Load() ([]byte, error) {
	data, err := t.FS.ReadFile(t.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.Rel(), err)
	}
	return data, nil
}

// Replace atomically rewrites the stylesheet with data.
func (t *Target) Replace(data []byte) error {
	dir := filepath.Dir(t.Path)

	tmp, tmpPath, err := t.FS.CreateTempFile(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %q: %w", dir, err)
	}
	defer t.FS.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := t.FS.Rename(tmpPath, t.Path); err != nil {
		return fmt.Errorf("rename temp %q to %q: %w", tmpPath, t.Path, err)
	}
	return nil
}

// CleanupTemp removes orphaned temp files next to the stylesheet, left
// behind by interrupted runs.
func (t *Target) CleanupTemp() error {
	dir := filepath.Dir(t.Path)

	entries, err := t.FS.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".tmp-") || strings.HasPrefix(name, "tmp-") {
			p := filepath.Join(dir, name)
			if fi, err := t.FS.Stat(p); err != nil || fi.Size() == 0 {
				_ = t.FS.Remove(p)
			}
		}
	}
	return nil
}
