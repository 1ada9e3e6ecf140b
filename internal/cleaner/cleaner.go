package cleaner

import "bytes"

// Corruption markers left behind by the broken build step. The brace-star
// marker takes priority over the outline marker.
const (
	MarkerBraceStar = "}*"
	MarkerOutline   = "* { outline"
)

// Result describes what Clean did to the content.
type Result struct {
	NullsRemoved int
	Marker       string // matched marker, "" if none
	TrimmedBytes int    // bytes dropped from the marker to end of content
	Changed      bool
}

// StripNulls removes all null bytes and reports how many were removed.
func StripNulls(content []byte) ([]byte, int) {
	n := bytes.Count(content, []byte{0})
	if n == 0 {
		return content, 0
	}
	return bytes.ReplaceAll(content, []byte{0}, nil), n
}

// TruncateGarbage cuts content at the first corruption marker.
// A brace-star match keeps the prefix and restores the closing brace plus
// a trailing newline. An outline match keeps the bare prefix. The outline
// marker is only considered when no brace-star marker exists anywhere.
func TruncateGarbage(content []byte) ([]byte, string, int) {
	if i := bytes.Index(content, []byte(MarkerBraceStar)); i >= 0 {
		out := make([]byte, 0, i+2)
		out = append(out, content[:i]...)
		out = append(out, '}', '\n')
		return out, MarkerBraceStar, len(content) - i
	}
	if i := bytes.Index(content, []byte(MarkerOutline)); i >= 0 {
		return content[:i], MarkerOutline, len(content) - i
	}
	return content, "", 0
}

// Clean strips null bytes and then truncates at the first marker, in that
// order: a marker fractured by embedded nulls still matches.
func Clean(content []byte) ([]byte, Result) {
	stripped, nulls := StripNulls(content)
	out, marker, trimmed := TruncateGarbage(stripped)

	return out, Result{
		NullsRemoved: nulls,
		Marker:       marker,
		TrimmedBytes: trimmed,
		Changed:      nulls > 0 || marker != "",
	}
}
