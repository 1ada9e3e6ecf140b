package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveProjectRoot determines the project root by walking up.
// It traverses up the directory tree until it finds the target file,
// a state dir or a pointer file. Returns "" when none is found.
func ResolveProjectRoot() string {
	cwd, _ := os.Getwd()
	for {
		target := filepath.Join(cwd, TargetFile)
		stateDir := filepath.Join(cwd, StateDir)
		ptrFile := filepath.Join(cwd, PointerFile)

		if isFile(target) || isDir(stateDir) || isFile(ptrFile) {
			return cwd
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break // reached filesystem root
		}
		cwd = parent
	}
	return "" // not found
}

// ResolveStateRoot returns the state directory for the given project root.
// It respects the pointer file, if it exists.
func ResolveStateRoot(projectRoot string) string {
	root := filepath.Join(projectRoot, StateDir)

	ptr := filepath.Join(projectRoot, PointerFile)
	if fi, err := os.Stat(ptr); err == nil && !fi.IsDir() {
		if data, err := os.ReadFile(ptr); err == nil {
			target := filepath.Clean(strings.TrimSpace(string(data)))
			if filepath.IsAbs(target) {
				root = target
			} else {
				root = filepath.Join(projectRoot, target)
			}
		}
	}

	return root
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
