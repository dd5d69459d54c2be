package segment

// Tag identifies a segment type by its leading field.
type Tag string

const (
	ISA Tag = "ISA"
	GS  Tag = "GS"
	ST  Tag = "ST"
	BGN Tag = "BGN"
	INS Tag = "INS"
	REF Tag = "REF"
	DTP Tag = "DTP"
	NM1 Tag = "NM1"
	PER Tag = "PER"
	N3  Tag = "N3"
	N4  Tag = "N4"
	DMG Tag = "DMG"
	HD  Tag = "HD"
	SE  Tag = "SE"
	GE  Tag = "GE"
	IEA Tag = "IEA"
)

func (t Tag) String() string {
	return string(t)
}

// IsEnvelope reports whether t is an interchange, group or transaction control segment.
// These carry no member data and are only skipped.
func (t Tag) IsEnvelope() bool {
	switch t {
	case ISA, GS, ST, BGN, SE, GE, IEA:
		return true
	}
	return false
}

// IsMemberLevel reports whether t belongs to a member loop, including INS itself.
func (t Tag) IsMemberLevel() bool {
	switch t {
	case INS, REF, DTP, NM1, PER, N3, N4, DMG, HD:
		return true
	}
	return false
}

// TagOf returns the tag of a field sequence, or "" for an empty sequence.
func TagOf(fields []string) Tag {
	if len(fields) == 0 {
		return ""
	}
	return Tag(fields[0])
}
