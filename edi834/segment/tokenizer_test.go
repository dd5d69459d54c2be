package segment

import (
	"strings"
	"testing"

	ers "github.com/CMSgov/edi834-app/edi834/errors"
	"github.com/stretchr/testify/assert"
)

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"escapedTerminator", `A~B\~C~`, []string{"A", "B~C"}},
		{"noTrailingTerminator", "ISA*00~GS*HP", []string{"ISA*00", "GS*HP"}},
		{"blankSegmentsDropped", "A~~  ~\n~B~", []string{"A", "B"}},
		{"surroundingWhitespaceTrimmed", "  INS*Y*18*030 ~\n  REF*0F*123~\n", []string{"INS*Y*18*030", "REF*0F*123"}},
		{"windowsLineEndings", "A~\r\nB~\r\n", []string{"A", "B"}},
		{"oldMacLineEndings", "A~\rB~\r", []string{"A", "B"}},
		{"innerNewlinesNormalized", "N3*1 Main\r\nSt~", []string{"N3*1 Main\nSt"}},
		{"onlyEscapedTerminator", `\~`, []string{"~"}},
		{"leadingTerminator", "~A", []string{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := SplitSegments(tt.text)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, segments)
		})
	}
}

func TestSplitSegments_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "~~~", " \n ~ \r\n"} {
		segments, err := SplitSegments(text)
		assert.Nil(t, segments)
		assert.IsType(t, &ers.EmptyInputError{}, err, "text %q", text)
	}
}

func TestSplitSegments_CustomTerminator(t *testing.T) {
	tok := Tokenizer{FieldSeparator: "|", SegmentTerminator: "'"}
	segments, err := tok.SplitSegments(`INS|Y|18|030'REF|0F|O\'BRIEN'`)
	assert.NoError(t, err)
	assert.Equal(t, []string{"INS|Y|18|030", "REF|0F|O'BRIEN"}, segments)

	// A multi-character terminator is honored as a unit.
	tok = Tokenizer{SegmentTerminator: "~\n"}
	segments, err = tok.SplitSegments("A*1~\nB*2~C~\n")
	assert.NoError(t, err)
	assert.Equal(t, []string{"A*1", "B*2~C"}, segments)
}

func TestSplitSegments_Deterministic(t *testing.T) {
	text := strings.Repeat(`INS*Y*18*030~REF*0F*A\~B~`, 3)
	first, err := SplitSegments(text)
	assert.NoError(t, err)
	second, err := SplitSegments(text)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 6)
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"trailingTerminator", "INS*Y*18*030~", []string{"INS", "Y", "18", "030"}},
		{"noTerminator", "INS*Y*18*030", []string{"INS", "Y", "18", "030"}},
		{"emptyFieldsPreserved", "HD*030**HLT*Gold", []string{"HD", "030", "", "HLT", "Gold"}},
		{"trailingEmptyField", "NM1*IL*1*Smith*", []string{"NM1", "IL", "1", "Smith", ""}},
		{"tagOnly", "SE", []string{"SE"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitFields(tt.line))
		})
	}
}

func TestSplitFields_CustomSeparator(t *testing.T) {
	tok := Tokenizer{FieldSeparator: "|", SegmentTerminator: "'"}
	assert.Equal(t, []string{"N4", "Anytown", "CA", "90210"}, tok.SplitFields("N4|Anytown|CA|90210'"))
	// Only one trailing terminator is removed
	assert.Equal(t, []string{"REF", "0F", "A'"}, tok.SplitFields("REF|0F|A''"))
}
