package segment

import "strings"

// ISA is a fixed-width segment: the element separator follows the tag and the
// segment terminator follows the component separator in ISA16.
const (
	isaElementSeparatorPos = 3
	isaTerminatorPos       = 105
)

// DetectDelimiters returns a Tokenizer configured from the interchange header when text
// starts with a full ISA segment. Otherwise the default delimiters are returned.
func DetectDelimiters(text string) Tokenizer {
	text = strings.TrimLeft(text, " \t\r\n\ufeff")
	if !strings.HasPrefix(text, string(ISA)) || len(text) <= isaTerminatorPos {
		return Default
	}

	sep := text[isaElementSeparatorPos : isaElementSeparatorPos+1]
	term := text[isaTerminatorPos : isaTerminatorPos+1]
	if term == "\r" {
		// line endings are normalized before splitting
		term = "\n"
	}
	if sep == term || isAlphanumeric(sep[0]) || isAlphanumeric(term[0]) {
		return Default
	}

	return Tokenizer{FieldSeparator: sep, SegmentTerminator: term}
}

func isAlphanumeric(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
