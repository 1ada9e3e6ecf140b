package snapshot

import (
	"fmt"
	"path/filepath"

	"github.com/keshon/cssfix/internal/util"
)

// Status indicates the state of a snapshot on disk.
type Status int

const (
	OK Status = iota
	Missing
	Damaged
)

// Check contains the verification result for a single snapshot.
type Check struct {
	Hash   string
	Status Status
}

// VerifySnapshot checks a single snapshot against its content hash.
// Snapshots that fail to decompress count as damaged.
func (s *Store) VerifySnapshot(hash string) (Status, error) {
	data, err := s.cfs.ReadFile(s.objectPath(hash))
	if err != nil {
		if s.FS.IsNotExist(err) {
			return Missing, nil
		}
		return Damaged, err
	}

	if HashContent(data) != hash {
		return Damaged, nil
	}
	return OK, nil
}

// Verify checks the given hashes concurrently and streams results.
// Workers map errors into Status, so util.Parallel's error return is
// intentionally ignored to ensure the whole set is processed.
func (s *Store) Verify(hashes []string, workers int) <-chan Check {
	out := make(chan Check, 128)
	if workers <= 0 {
		workers = util.WorkerCount()
	}

	go func() {
		defer close(out)
		_ = util.Parallel(hashes, workers, func(h string) error {
			status, _ := s.VerifySnapshot(h)
			out <- Check{Hash: h, Status: status}
			return nil
		})
	}()

	return out
}

// VerifyAll checks every stored snapshot and reports how many failed.
// The channel is always drained so no worker is left blocked.
func (s *Store) VerifyAll() error {
	hashes, err := s.ListObjects()
	if err != nil {
		return err
	}

	bad := 0
	for check := range s.Verify(hashes, 0) {
		if check.Status != OK {
			bad++
		}
	}

	if bad > 0 {
		return fmt.Errorf("%d of %d snapshots failed verification", bad, len(hashes))
	}
	return nil
}

// RunFiles maps each stored run hash to whether its snapshot object is
// still present, for cross-checking runs against objects.
func (s *Store) RunFiles() (map[string]bool, error) {
	runs, err := s.ListRuns()
	if err != nil {
		return nil, err
	}

	out := make(map[string]bool, len(runs))
	for _, r := range runs {
		out[r.Hash] = s.FS.Exists(filepath.Join(s.ObjectsDir(), r.Hash+objectExt))
	}
	return out, nil
}
