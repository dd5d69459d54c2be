package models

import "time"

// Optional scalar fields are pointers: nil means the element was not present in the
// segment, a pointer to "" means it was present but empty.

// A Reference is a REF sub-segment attached to a member.
type Reference struct {
	Qualifier      string
	Identification string
	Description    *string
}

// A DateSpan is a DTP sub-segment attached to a member.
type DateSpan struct {
	Qualifier       string
	FormatQualifier string
	Period          string // CCYYMMDD
}

// Name is the NM1 sub-segment identifying the member.
type Name struct {
	EntityIdentifierCode     string
	EntityTypeQualifier      string
	LastOrOrganizationName   string
	First                    *string
	Middle                   *string
	IdentificationQualifier  *string
	IdentificationCode       *string
	EntityRelationshipCode   *string
	SecondEntityIdentifierCd *string
}

// Contact is the PER sub-segment.
type Contact struct {
	FunctionCode           string
	EnumerationCode        *string
	CommunicationQualifier string
	CommunicationNumber    string
}

// AddressLine is the N3 sub-segment.
type AddressLine struct {
	Line1 string
	Line2 *string
}

// Location is the N4 sub-segment.
type Location struct {
	City               string
	StateOrProvince    string
	PostalCode         string
	CountryCode        *string
	LocationIdentifier *string
}

// Demographics is the DMG sub-segment.
type Demographics struct {
	DateFormatQualifier string
	DateOfBirth         string
	GenderCode          string
	EthnicityCode       *string
}

// Coverage is the HD sub-segment.
type Coverage struct {
	MaintenanceReasonCode   string
	MaintenanceTypeCode     *string
	SourceOfSubmissionCode  string
	PlanCoverageDescription string
	EmployeeStatusCode      *string
}

// A MemberRecord represents one INS segment and every sub-segment that followed it
// up to the next INS segment or the end of the transaction.
type MemberRecord struct {
	YesNoResponseCode     string
	DependentCode         string
	MaintenanceTypeCode   string
	MaintenanceReasonCode *string
	BenefitStatusCode     *string
	MedicareStatusCode    *string
	OccupationLengthCode  *string
	HandicapIndicator     *string

	References []Reference
	DateSpans  []DateSpan

	Name         *Name
	Contact      *Contact
	Address      *AddressLine
	Location     *Location
	Demographics *Demographics
	Coverage     *Coverage
}

// Deref returns the value of an optional field, or "" if it was not present.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// An EnrollmentFile is a basic file representation that can be stored in a database.
type EnrollmentFile struct {
	ID           uint
	Name         string
	Timestamp    time.Time
	ImportStatus string
}
