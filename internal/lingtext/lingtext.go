// Package lingtext implements the inline multilingual text encoding used by
// the metadata files.
//
// A value that exists in several languages is packed into a single string
// field in this format:
//
//	[[en]]This is the English text[[es]]Este es el texto en español
//
// The common case of English-only text is stored as the bare text with no
// markers, so a monolingual field is indistinguishable from ordinary scalar
// text. The encoding is deliberately simple; it is hidden behind TextHolder
// so it can be replaced later without touching callers.
package lingtext

import (
	"fmt"
	"strings"
)

const (
	openMarker  = "[["
	closeMarker = "]]"
)

// Axis is one (language tag, text) pair within a multilingual value.
// Tags are opaque short codes ("en", "etr"), case-sensitive, and must not
// contain the marker substrings.
type Axis struct {
	Tag  string
	Text string
}

// Encode serializes axes into the inline format. Axes whose trimmed text is
// empty are dropped. An English-only value encodes to the bare text; anything
// else becomes a concatenation of [[tag]]text segments in the order given.
func Encode(axes []Axis) string {
	nonEmpty := make([]Axis, 0, len(axes))
	for _, a := range axes {
		if strings.TrimSpace(a.Text) != "" {
			nonEmpty = append(nonEmpty, a)
		}
	}

	if len(nonEmpty) == 0 {
		return ""
	}
	if len(nonEmpty) == 1 && nonEmpty[0].Tag == "en" {
		return nonEmpty[0].Text
	}

	var b strings.Builder
	for _, a := range nonEmpty {
		b.WriteString(openMarker)
		b.WriteString(a.Tag)
		b.WriteString(closeMarker)
		b.WriteString(strings.TrimSpace(a.Text))
	}
	return b.String()
}

// Decode parses a serialized value back into its language axes.
//
// A string with no markers is pure English text under tag "en". Otherwise the
// string must start with a tag marker; leading text before the first marker,
// or a segment without exactly one closing marker, is a format error
// (ErrMalformedText).
func Decode(s string) ([]Axis, error) {
	if !strings.Contains(s, openMarker) {
		return []Axis{{Tag: "en", Text: s}}, nil
	}

	segments := strings.Split(s, openMarker)
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}
	if segments[0] != "" {
		return nil, fmt.Errorf("%w: text before the first language tag in %q", ErrMalformedText, s)
	}
	segments = segments[1:]

	axes := make([]Axis, 0, len(segments))
	for _, seg := range segments {
		parts := strings.Split(seg, closeMarker)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: invalid axis/text pair in %q", ErrMalformedText, s)
		}
		axes = append(axes, Axis{Tag: parts[0], Text: parts[1]})
	}
	return axes, nil
}
