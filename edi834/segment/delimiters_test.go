package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const isaHeader = "ISA*00*          *00*          *ZZ*SENDERID       *ZZ*RECEIVERID     *230101*1253*^*00501*000000001*0*P*:~"

func TestDetectDelimiters(t *testing.T) {
	assert.Len(t, isaHeader, 106)

	tests := []struct {
		name     string
		text     string
		expected Tokenizer
	}{
		{"defaultISA", isaHeader + "GS*BE~", Tokenizer{FieldSeparator: "*", SegmentTerminator: "~"}},
		{"pipeAndQuote", replaceDelims(isaHeader, '|', '\'') + "GS|BE'", Tokenizer{FieldSeparator: "|", SegmentTerminator: "'"}},
		{"carriageReturnTerminator", replaceDelims(isaHeader, '*', '\r') + "\nGS*BE\r\n", Tokenizer{FieldSeparator: "*", SegmentTerminator: "\n"}},
		{"leadingWhitespace", "\n  " + isaHeader, Tokenizer{FieldSeparator: "*", SegmentTerminator: "~"}},
		{"noISA", "INS*Y*18*030~", Default},
		{"truncatedISA", "ISA*00*", Default},
		{"empty", "", Default},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectDelimiters(tt.text))
		})
	}
}

func replaceDelims(isa string, sep, term byte) string {
	b := []byte(isa)
	for i := range b {
		if b[i] == '*' {
			b[i] = sep
		}
	}
	b[len(b)-1] = term
	return string(b)
}
