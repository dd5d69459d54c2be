package segment

import (
	"strings"

	ers "github.com/CMSgov/edi834-app/edi834/errors"
)

const (
	DefaultFieldSeparator    = "*"
	DefaultSegmentTerminator = "~"

	escapeChar = '\\'
)

// A Tokenizer splits EDI text into segments and segments into fields.
// The zero value uses the default delimiters.
type Tokenizer struct {
	FieldSeparator    string
	SegmentTerminator string
}

// Default tokenizes with '*' between fields and '~' between segments.
var Default = Tokenizer{
	FieldSeparator:    DefaultFieldSeparator,
	SegmentTerminator: DefaultSegmentTerminator,
}

func (t Tokenizer) separator() string {
	if t.FieldSeparator == "" {
		return DefaultFieldSeparator
	}
	return t.FieldSeparator
}

func (t Tokenizer) terminator() string {
	if t.SegmentTerminator == "" {
		return DefaultSegmentTerminator
	}
	return t.SegmentTerminator
}

// SplitSegments splits text on every segment terminator that is not preceded by a backslash.
// Line endings are normalized to "\n" first, blank segments are dropped, and escaped
// terminators inside the remaining segments are restored to the literal terminator.
func (t Tokenizer) SplitSegments(text string) ([]string, error) {
	if text == "" {
		return nil, &ers.EmptyInputError{}
	}

	term := t.terminator()
	escaped := string(escapeChar) + term

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var segments []string
	start := 0
	for i := 0; i < len(text); {
		if !strings.HasPrefix(text[i:], term) {
			i++
			continue
		}
		if i > 0 && text[i-1] == escapeChar {
			i += len(term)
			continue
		}
		segments = appendSegment(segments, text[start:i], term, escaped)
		i += len(term)
		start = i
	}
	segments = appendSegment(segments, text[start:], term, escaped)

	if len(segments) == 0 {
		return nil, &ers.EmptyInputError{}
	}
	return segments, nil
}

func appendSegment(segments []string, raw, term, escaped string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return segments
	}
	return append(segments, strings.ReplaceAll(s, escaped, term))
}

// SplitFields splits one segment into its positional fields. A trailing terminator is
// removed first. Empty fields are kept since position carries meaning.
func (t Tokenizer) SplitFields(line string) []string {
	if line == "" {
		return []string{}
	}
	line = strings.TrimSuffix(line, t.terminator())
	return strings.Split(line, t.separator())
}

// SplitSegments splits text using the default delimiters.
func SplitSegments(text string) ([]string, error) {
	return Default.SplitSegments(text)
}

// SplitFields splits a segment using the default delimiters.
func SplitFields(line string) []string {
	return Default.SplitFields(line)
}
