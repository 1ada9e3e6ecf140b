package fs_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/keshon/cssfix/internal/fs"
)

// --- Hook swap helpers --- //

func fsOpenSwap(fn func(string) (io.ReadSeekCloser, error)) func() {
	orig := fs.GetOpen()
	fs.SetOpen(fn)
	return func() { fs.SetOpen(orig) }
}

func fsReadFileSwap(fn func(string) ([]byte, error)) func() {
	orig := fs.GetReadFile()
	fs.SetReadFile(fn)
	return func() { fs.SetReadFile(orig) }
}

func fsWriteFileSwap(fn func(string, []byte, os.FileMode) error) func() {
	orig := fs.GetWriteFile()
	fs.SetWriteFile(fn)
	return func() { fs.SetWriteFile(orig) }
}

func fsStatSwap(fn func(string) (os.FileInfo, error)) func() {
	orig := fs.GetStat()
	fs.SetStat(fn)
	return func() { fs.SetStat(orig) }
}

func fsMkdirAllSwap(fn func(string, os.FileMode) error) func() {
	orig := fs.GetMkdirAll()
	fs.SetMkdirAll(fn)
	return func() { fs.SetMkdirAll(orig) }
}

func fsRemoveSwap(fn func(string) error) func() {
	orig := fs.GetRemove()
	fs.SetRemove(fn)
	return func() { fs.SetRemove(orig) }
}

func fsRenameSwap(fn func(string, string) error) func() {
	orig := fs.GetRename()
	fs.SetRename(fn)
	return func() { fs.SetRename(orig) }
}

func fsCreateTempSwap(fn func(string, string) (io.WriteCloser, string, error)) func() {
	orig := fs.GetCreateTemp()
	fs.SetCreateTemp(fn)
	return func() { fs.SetCreateTemp(orig) }
}

func fsIsNotExistSwap(fn func(error) bool) func() {
	orig := fs.GetIsNotExist()
	fs.SetIsNotExist(fn)
	return func() { fs.SetIsNotExist(orig) }
}

// --- OSFS method tests --- //

func TestOSFS_Open(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}

	restore := fsOpenSwap(func(path string) (io.ReadSeekCloser, error) {
		called = true
		if path != "abc.txt" {
			t.Fatalf("expected path abc.txt, got %s", path)
		}
		return nil, errors.New("open-error")
	})
	defer restore()

	_, err := fsOverride.Open("abc.txt")
	if !called {
		t.Fatal("hook not called")
	}
	if err == nil || err.Error() != "open-error" {
		t.Fatalf("expected open-error, got %v", err)
	}
}

func TestOSFS_Stat(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}

	restore := fsStatSwap(func(path string) (os.FileInfo, error) {
		called = true
		return nil, errors.New("stat-failed")
	})
	defer restore()

	_, err := fsOverride.Stat("zzz")
	if !called {
		t.Fatal("expected stat hook to be called")
	}
	if err == nil || err.Error() != "stat-failed" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOSFS_ReadFile(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}

	restore := fsReadFileSwap(func(path string) ([]byte, error) {
		called = true
		return []byte("hello"), nil
	})
	defer restore()

	out, err := fsOverride.ReadFile("x")
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("readFile hook not called")
	}
	if string(out) != "hello" {
		t.Fatalf("expected hello, got %s", out)
	}
}

func TestOSFS_WriteFile(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}

	restore := fsWriteFileSwap(func(path string, data []byte, perm os.FileMode) error {
		called = true
		if path != "aaa" || string(data) != "bbb" || perm != 0o644 {
			t.Fatalf("unexpected write args")
		}
		return nil
	})
	defer restore()

	err := fsOverride.WriteFile("aaa", []byte("bbb"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("writeFile hook not called")
	}
}

func TestOSFS_MkdirAll(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}

	restore := fsMkdirAllSwap(func(path string, perm os.FileMode) error {
		called = true
		if perm != 0o755 {
			t.Fatalf("unexpected perm")
		}
		return nil
	})
	defer restore()

	err := fsOverride.MkdirAll("dir123", 0o755)
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("mkdirAll hook not called")
	}
}

func TestOSFS_Remove(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}

	restore := fsRemoveSwap(func(path string) error {
		called = true
		return nil
	})
	defer restore()

	err := fsOverride.Remove("qqq")
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("remove hook not called")
	}
}

func TestOSFS_Rename(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}

	restore := fsRenameSwap(func(old, new string) error {
		called = true
		if old != "a" || new != "b" {
			t.Fatalf("unexpected rename args")
		}
		return nil
	})
	defer restore()

	err := fsOverride.Rename("a", "b")
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("rename hook not called")
	}
}

func TestOSFS_CreateTempFile(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}

	restore := fsCreateTempSwap(func(dir, pattern string) (io.WriteCloser, string, error) {
		called = true
		if dir != "tmp" || pattern != "x*" {
			t.Fatalf("unexpected CreateTemp args")
		}
		return nil, "", errors.New("tmp-failed")
	})
	defer restore()

	_, _, err := fsOverride.CreateTempFile("tmp", "x*")
	if err == nil || err.Error() != "tmp-failed" {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("CreateTemp hook not called")
	}
}

func TestOSFS_IsNotExist(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}
	errFake := errors.New("nope")

	restore := fsIsNotExistSwap(func(err error) bool {
		called = true
		return err == errFake
	})
	defer restore()

	if !fsOverride.IsNotExist(errFake) {
		t.Fatal("expected true")
	}
	if !called {
		t.Fatal("isNotExist not called")
	}
}

func TestOSFS_IsDir(t *testing.T) {
	tmp := t.TempDir()
	fsOverride := &fs.OSFS{}

	if !fsOverride.IsDir(tmp) {
		t.Fatalf("expected %s to be a dir", tmp)
	}
}

func TestOSFS_Exists(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "x")
	os.WriteFile(tmpFile, []byte("1"), 0o644)

	fsOverride := &fs.OSFS{}
	if !fsOverride.Exists(tmpFile) {
		t.Fatalf("expected file to exist")
	}
}
