package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// MemoryFS is a pure in-memory filesystem for tests.
type MemoryFS struct {
	files map[string][]byte
	dirs  map[string]struct{}
}

func NewMemoryFS() *MemoryFS {
	m := &MemoryFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
	}
	m.dirs["/"] = struct{}{}
	m.dirs["."] = struct{}{}
	return m
}

// normalize paths
func clean(p string) string {
	if p == "" {
		return "."
	}
	return filepath.ToSlash(filepath.Clean(p))
}

func (m *MemoryFS) dirExists(p string) bool {
	_, ok := m.dirs[clean(p)]
	return ok
}

func (m *MemoryFS) Open(p string) (io.ReadSeekCloser, error) {
	p = clean(p)
	data, ok := m.files[p]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return &memReadSeekCloser{Reader: bytes.NewReader(data)}, nil
}

type memReadSeekCloser struct {
	*bytes.Reader
}

func (r *memReadSeekCloser) Close() error { return nil }

func (m *MemoryFS) ReadFile(p string) ([]byte, error) {
	p = clean(p)
	data, ok := m.files[p]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryFS) WriteFile(p string, data []byte, perm os.FileMode) error {
	p = clean(p)
	if !m.dirExists(path.Dir(p)) {
		return fmt.Errorf("write: dir %q does not exist", path.Dir(p))
	}
	m.files[p] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryFS) MkdirAll(p string, perm os.FileMode) error {
	p = clean(p)
	cur := ""
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." {
			continue
		}
		cur = path.Join(cur, seg)
		m.dirs[cur] = struct{}{}
	}
	return nil
}

func (m *MemoryFS) Remove(p string) error {
	p = clean(p)
	if _, ok := m.files[p]; ok {
		delete(m.files, p)
		return nil
	}
	if _, ok := m.dirs[p]; ok {
		delete(m.dirs, p)
		return nil
	}
	return fs.ErrNotExist
}

func (m *MemoryFS) Rename(oldp, newp string) error {
	oldp, newp = clean(oldp), clean(newp)

	if data, ok := m.files[oldp]; ok {
		if !m.dirExists(path.Dir(newp)) {
			return fs.ErrNotExist
		}
		delete(m.files, oldp)
		m.files[newp] = data
		return nil
	}

	if _, ok := m.dirs[oldp]; ok {
		delete(m.dirs, oldp)
		m.dirs[newp] = struct{}{}
		return nil
	}

	return fs.ErrNotExist
}

func (m *MemoryFS) Stat(p string) (os.FileInfo, error) {
	p = clean(p)
	if data, ok := m.files[p]; ok {
		return &memInfo{name: path.Base(p), size: int64(len(data))}, nil
	}
	if _, ok := m.dirs[p]; ok {
		return &memInfo{name: path.Base(p), dir: true}, nil
	}
	return nil, fs.ErrNotExist
}

func (m *MemoryFS) ReadDir(p string) ([]os.DirEntry, error) {
	p = clean(p)
	if !m.dirExists(p) {
		return nil, fs.ErrNotExist
	}

	prefix := p
	if prefix != "/" && prefix != "." {
		prefix += "/"
	}

	seen := map[string]bool{}
	var out []os.DirEntry

	for dp := range m.dirs {
		if name := childName(dp, prefix); name != "" && !seen[name] {
			seen[name] = true
			out = append(out, memEntry{name: name, dir: true})
		}
	}
	for fp := range m.files {
		if name := childName(fp, prefix); name != "" && !seen[name] {
			seen[name] = true
			out = append(out, memEntry{name: name})
		}
	}

	return out, nil
}

// childName returns the first path segment of p under prefix, or "".
func childName(p, prefix string) string {
	if !strings.HasPrefix(p, prefix) {
		return ""
	}
	rest := strings.TrimPrefix(p, prefix)
	name := strings.Split(rest, "/")[0]
	if name == "." {
		return ""
	}
	return name
}

func (m *MemoryFS) CreateTempFile(dir, pattern string) (io.WriteCloser, string, error) {
	if !m.dirExists(dir) {
		return nil, "", fs.ErrNotExist
	}

	tmpName := path.Join(clean(dir), pattern+"-tmp")
	buf := &bytes.Buffer{}

	wc := &memWriteCloser{
		buf: buf,
		onClose: func() {
			m.files[clean(tmpName)] = buf.Bytes()
		},
	}
	return wc, tmpName, nil
}

type memWriteCloser struct {
	buf     *bytes.Buffer
	onClose func()
}

func (w *memWriteCloser) Write(p []byte) (int, error) { return w.buf.Write(p) }
func (w *memWriteCloser) Close() error {
	if w.onClose != nil {
		w.onClose()
	}
	return nil
}

func (m *MemoryFS) IsNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }
func (m *MemoryFS) IsDir(p string) bool       { return m.dirExists(p) }
func (m *MemoryFS) Exists(p string) bool {
	p = clean(p)
	_, isFile := m.files[p]
	_, isDirEntry := m.dirs[p]
	return isFile || isDirEntry
}

type memInfo struct {
	name string
	size int64
	dir  bool
}

func (i *memInfo) Name() string       { return i.name }
func (i *memInfo) Size() int64        { return i.size }
func (i *memInfo) Mode() fs.FileMode  { return 0o644 }
func (i *memInfo) ModTime() time.Time { return time.Time{} }
func (i *memInfo) IsDir() bool        { return i.dir }
func (i *memInfo) Sys() interface{}   { return nil }

type memEntry struct {
	name string
	dir  bool
}

func (e memEntry) Name() string               { return e.name }
func (e memEntry) IsDir() bool                { return e.dir }
func (e memEntry) Type() fs.FileMode          { return 0 }
func (e memEntry) Info() (os.FileInfo, error) { return &memInfo{name: e.name, dir: e.dir}, nil }
