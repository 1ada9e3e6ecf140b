package cleaner

import (
	"io"

	"golang.org/x/exp/mmap"
)

const scanChunkSize = 64 * 1024 // 64 KiB read window

// ScanReport summarizes a target file without touching it.
// Marker offsets are raw file offsets of the first byte of the match.
// Matching runs over the null-stripped stream, so a marker fractured by
// null bytes is still reported, at the offset of its first non-null byte.
type ScanReport struct {
	Size        int64
	Nulls       int
	BraceStarAt int64 // -1 when absent
	OutlineAt   int64 // -1 when absent
}

// Dirty reports whether a cleaning run would change the file.
func (r ScanReport) Dirty() bool {
	return r.Nulls > 0 || r.BraceStarAt >= 0 || r.OutlineAt >= 0
}

// Scan memory-maps the file at path and reports its size, null byte count
// and the first occurrence of each corruption marker.
func Scan(path string) (ScanReport, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return ScanReport{}, err
	}
	defer r.Close()

	report := ScanReport{
		Size:        int64(r.Len()),
		BraceStarAt: -1,
		OutlineAt:   -1,
	}

	braceStar := newMarkerMatcher(MarkerBraceStar)
	outline := newMarkerMatcher(MarkerOutline)

	buf := make([]byte, scanChunkSize)
	for off := int64(0); off < report.Size; {
		n, rerr := r.ReadAt(buf, off)
		if n == 0 {
			if rerr != nil && rerr != io.EOF {
				return ScanReport{}, rerr
			}
			break
		}

		for i, b := range buf[:n] {
			if b == 0 {
				report.Nulls++
				continue
			}
			braceStar.feed(b, off+int64(i))
			outline.feed(b, off+int64(i))
		}

		off += int64(n)
		if rerr == io.EOF {
			break
		}
	}

	report.BraceStarAt = braceStar.foundAt
	report.OutlineAt = outline.foundAt
	return report, nil
}

// markerMatcher finds the first occurrence of a fixed pattern in a byte
// stream fed one byte at a time. Matcher state survives chunk boundaries.
// Neither marker repeats its first byte later in the pattern, so falling
// back to state zero on mismatch never skips a potential match.
type markerMatcher struct {
	pattern []byte
	state   int
	start   int64
	foundAt int64
}

func newMarkerMatcher(pattern string) *markerMatcher {
	return &markerMatcher{pattern: []byte(pattern), foundAt: -1}
}

func (m *markerMatcher) feed(b byte, off int64) {
	if m.foundAt >= 0 {
		return
	}
	if b != m.pattern[m.state] {
		m.state = 0
	}
	if b == m.pattern[m.state] {
		if m.state == 0 {
			m.start = off
		}
		m.state++
		if m.state == len(m.pattern) {
			m.foundAt = m.start
		}
	}
}
