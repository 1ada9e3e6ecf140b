package snapshot

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/keshon/cssfix/internal/util"
)

// Run records one cleaning run, keyed by the hash of the pre-clean
// content. Rerunning over identical content overwrites the record.
type Run struct {
	Hash         string `json:"hash"`
	Target       string `json:"target"`
	Timestamp    string `json:"timestamp"`
	OriginalSize int64  `json:"original_size"`
	CleanedSize  int64  `json:"cleaned_size"`
	NullsRemoved int    `json:"nulls_removed"`
	Marker       string `json:"marker,omitempty"`
	TrimmedBytes int    `json:"trimmed_bytes"`
	Changed      bool   `json:"changed"`
}

// Time parses the record timestamp. Zero time on malformed records.
func (r Run) Time() time.Time {
	t, _ := time.Parse(time.RFC3339, r.Timestamp)
	return t
}

// Describe returns a short human summary of what the run changed.
func (r Run) Describe() string {
	if !r.Changed {
		return "already clean"
	}

	var parts []string
	if r.NullsRemoved > 0 {
		parts = append(parts, "removed "+english.Plural(r.NullsRemoved, "null byte", ""))
	}
	if r.Marker != "" {
		parts = append(parts, fmt.Sprintf("trimmed %s at %q",
			humanize.Bytes(uint64(r.TrimmedBytes)), r.Marker))
	}
	return strings.Join(parts, ", ")
}

func (s *Store) runPath(hash string) string {
	return filepath.Join(s.RunsDir(), hash+".json")
}

// WriteRun persists a run record.
func (s *Store) WriteRun(r Run) error {
	if r.Hash == "" {
		return fmt.Errorf("invalid run: missing hash")
	}
	if err := util.WriteJSON(s.runPath(r.Hash), r); err != nil {
		return fmt.Errorf("write run %q: %w", r.Hash, err)
	}
	return nil
}

// ReadRun reads the run record for hash.
func (s *Store) ReadRun(hash string) (Run, error) {
	var r Run
	if err := util.ReadJSON(s.runPath(hash), &r); err != nil {
		return Run{}, fmt.Errorf("read run %q: %w", hash, err)
	}
	return r, nil
}

// ListRuns returns all run records, newest first.
func (s *Store) ListRuns() ([]Run, error) {
	entries, err := s.FS.ReadDir(s.RunsDir())
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	var runs []Run
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		var r Run
		path := filepath.Join(s.RunsDir(), e.Name())
		if err := util.ReadJSON(path, &r); err != nil {
			return nil, fmt.Errorf("read run %q: %w", e.Name(), err)
		}
		runs = append(runs, r)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Time().After(runs[j].Time())
	})
	return runs, nil
}

// LatestRun returns the most recent run record.
func (s *Store) LatestRun() (Run, bool, error) {
	runs, err := s.ListRuns()
	if err != nil {
		return Run{}, false, err
	}
	if len(runs) == 0 {
		return Run{}, false, nil
	}
	return runs[0], true, nil
}
