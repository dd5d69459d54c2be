package schema

import (
	"github.com/CMSgov/edi834-app/edi834/models"
	"github.com/CMSgov/edi834-app/edi834/segment"
)

const (
	dateFormatCCYYMMDD = "D8"
	sourceHealth       = "HLT"
)

// Member is the INS segment layout. Elements 7 (COBRA qualifying event) and
// beyond 9 are not captured.
var Member = Schema[models.MemberRecord]{
	Tag: segment.INS,
	Fields: []Field[models.MemberRecord]{
		required(1, "Yes/No Response Code", 1, 1, func(m *models.MemberRecord, v string) { m.YesNoResponseCode = v }),
		required(2, "Dependent Code", 2, 3, func(m *models.MemberRecord, v string) { m.DependentCode = v }),
		required(3, "Maintenance Type Code", 2, 3, func(m *models.MemberRecord, v string) { m.MaintenanceTypeCode = v }),
		optional(4, "Maintenance Reason Code", 0, 3, func(m *models.MemberRecord, v *string) { m.MaintenanceReasonCode = v }),
		optional(5, "Benefit Status Code", 1, 1, func(m *models.MemberRecord, v *string) { m.BenefitStatusCode = v }),
		optional(6, "Medicare Status Code", 1, 1, func(m *models.MemberRecord, v *string) { m.MedicareStatusCode = v }),
		optional(8, "Occupation Length Code", 1, 2, func(m *models.MemberRecord, v *string) { m.OccupationLengthCode = v }),
		optional(9, "Handicap Indicator", 1, 1, func(m *models.MemberRecord, v *string) { m.HandicapIndicator = v }),
	},
}

var Reference = Schema[models.Reference]{
	Tag: segment.REF,
	Fields: []Field[models.Reference]{
		required(1, "Reference Identification Qualifier", 2, 3, func(r *models.Reference, v string) { r.Qualifier = v }),
		required(2, "Reference Identification", 1, 50, func(r *models.Reference, v string) { r.Identification = v }),
		optional(3, "Description", 0, 80, func(r *models.Reference, v *string) { r.Description = v }),
	},
}

var DateSpan = Schema[models.DateSpan]{
	Tag: segment.DTP,
	Fields: []Field[models.DateSpan]{
		required(1, "Date/Time Qualifier", 3, 3, func(d *models.DateSpan, v string) { d.Qualifier = v }),
		required(2, "Date Time Format Qualifier", 2, 2, func(d *models.DateSpan, v string) { d.FormatQualifier = v }),
		required(3, "Date Time Period", 8, 8, func(d *models.DateSpan, v string) { d.Period = v }),
	},
}

var Name = Schema[models.Name]{
	Tag: segment.NM1,
	Fields: []Field[models.Name]{
		required(1, "Entity Identifier Code", 2, 2, func(n *models.Name, v string) { n.EntityIdentifierCode = v }),
		required(2, "Entity Type Qualifier", 1, 1, func(n *models.Name, v string) { n.EntityTypeQualifier = v }),
		required(3, "Name Last or Organization Name", 1, 60, func(n *models.Name, v string) { n.LastOrOrganizationName = v }),
		optional(4, "Name First", 0, 35, func(n *models.Name, v *string) { n.First = v }),
		optional(5, "Name Middle", 0, 35, func(n *models.Name, v *string) { n.Middle = v }),
		optional(6, "Identification Code Qualifier", 0, 2, func(n *models.Name, v *string) { n.IdentificationQualifier = v }),
		optional(7, "Identification Code", 0, 80, func(n *models.Name, v *string) { n.IdentificationCode = v }),
		optional(8, "Entity Relationship Code", 0, 2, func(n *models.Name, v *string) { n.EntityRelationshipCode = v }),
		optional(9, "Entity Identifier Code 2", 0, 9, func(n *models.Name, v *string) { n.SecondEntityIdentifierCd = v }),
	},
}

// Contact is the PER layout. The enumeration code sits between required
// elements, so it is always present when the segment is long enough to parse.
var Contact = Schema[models.Contact]{
	Tag: segment.PER,
	Fields: []Field[models.Contact]{
		required(1, "Contact Function Code", 2, 2, func(c *models.Contact, v string) { c.FunctionCode = v }),
		optional(2, "Contact Enumeration Code", 0, 2, func(c *models.Contact, v *string) { c.EnumerationCode = v }),
		required(3, "Communication Number Qualifier", 1, 2, func(c *models.Contact, v string) { c.CommunicationQualifier = v }),
		required(4, "Communication Number", 1, 256, func(c *models.Contact, v string) { c.CommunicationNumber = v }),
	},
}

var Address = Schema[models.AddressLine]{
	Tag: segment.N3,
	Fields: []Field[models.AddressLine]{
		required(1, "Address Information 1", 1, 55, func(a *models.AddressLine, v string) { a.Line1 = v }),
		optional(2, "Address Information 2", 0, 55, func(a *models.AddressLine, v *string) { a.Line2 = v }),
	},
}

var Location = Schema[models.Location]{
	Tag: segment.N4,
	Fields: []Field[models.Location]{
		required(1, "City Name", 2, 30, func(l *models.Location, v string) { l.City = v }),
		required(2, "State or Province Code", 2, 2, func(l *models.Location, v string) { l.StateOrProvince = v }),
		required(3, "Postal Code", 3, 15, func(l *models.Location, v string) { l.PostalCode = v }),
		optional(4, "Country Code", 2, 3, func(l *models.Location, v *string) { l.CountryCode = v }),
		optional(5, "Location Identifier", 0, 30, func(l *models.Location, v *string) { l.LocationIdentifier = v }),
	},
}

var Demographics = Schema[models.Demographics]{
	Tag: segment.DMG,
	Fields: []Field[models.Demographics]{
		fixed(1, "Date Time Format Qualifier", dateFormatCCYYMMDD, func(d *models.Demographics, v string) { d.DateFormatQualifier = v }),
		required(2, "Date of Birth", 8, 8, func(d *models.Demographics, v string) { d.DateOfBirth = v }),
		required(3, "Gender Code", 1, 1, func(d *models.Demographics, v string) { d.GenderCode = v }),
		optional(4, "Race or Ethnicity Code", 0, 1, func(d *models.Demographics, v *string) { d.EthnicityCode = v }),
	},
}

var Coverage = Schema[models.Coverage]{
	Tag: segment.HD,
	Fields: []Field[models.Coverage]{
		required(1, "Maintenance Reason Code", 3, 3, func(c *models.Coverage, v string) { c.MaintenanceReasonCode = v }),
		optional(2, "Maintenance Type Code", 0, 3, func(c *models.Coverage, v *string) { c.MaintenanceTypeCode = v }),
		fixed(3, "Source of Submission Code", sourceHealth, func(c *models.Coverage, v string) { c.SourceOfSubmissionCode = v }),
		required(4, "Plan Coverage Description", 1, 80, func(c *models.Coverage, v string) { c.PlanCoverageDescription = v }),
		optional(5, "Employee Status Code", 0, 3, func(c *models.Coverage, v *string) { c.EmployeeStatusCode = v }),
	},
}
