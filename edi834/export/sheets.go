package export

import (
	"strconv"

	"github.com/CMSgov/edi834-app/edi834/models"
)

const (
	MemberSheet    = "INS"
	ReferenceSheet = "INS-REF"
	DateSpanSheet  = "INS-DTP"
)

// A Sheet is one flattened table of the export. Rows in the REF and DTP sheets
// point back at their member through RefRow, the member's RelID.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

var memberHeader = []string{
	"RelID", "Yes/No", "Reltn", "MaintType", "MaintReason", "BenStatus", "Medicare", "OccLength", "Handicap",
	"EntIdCd", "EntTypeQual", "LastNameOrOrg", "FirstName", "MiddleName", "NMCdQual", "NMCd", "EntRelCd", "EntIdCd2",
	"ContFnCd", "ContEnuCd", "ContCommQual", "ContCommDetail",
	"Addr1", "Addr2",
	"City", "State", "Zip", "Country", "LocId",
	"DOB", "M/F", "Race",
	"MtRsnCd", "MtTypeCd", "SrcCd", "CvrgCd", "EmpStCd",
}

// memberKey identifies the member on child rows.
var memberKey = []string{"RefRow", "LastOrOrg", "FirstName", "Mid", "DOB", "ID"}

var referenceHeader = append(append([]string{}, memberKey...), "IDQual", "RefID", "Desc")

var dateSpanHeader = append(append([]string{}, memberKey...), "DateQual", "DateFmt", "Date")

// Sheets flattens records into the INS, INS-REF and INS-DTP tables.
func Sheets(records []models.MemberRecord) []Sheet {
	members := Sheet{Name: MemberSheet, Header: memberHeader}
	refs := Sheet{Name: ReferenceSheet, Header: referenceHeader}
	dates := Sheet{Name: DateSpanSheet, Header: dateSpanHeader}

	for i, r := range records {
		relID := strconv.Itoa(i + 1)
		members.Rows = append(members.Rows, memberRow(relID, r))

		key := keyColumns(relID, r)
		for _, ref := range r.References {
			refs.Rows = append(refs.Rows, append(append([]string{}, key...),
				ref.Qualifier, ref.Identification, models.Deref(ref.Description)))
		}
		for _, dtp := range r.DateSpans {
			dates.Rows = append(dates.Rows, append(append([]string{}, key...),
				dtp.Qualifier, dtp.FormatQualifier, dtp.Period))
		}
	}

	return []Sheet{members, refs, dates}
}

func memberRow(relID string, r models.MemberRecord) []string {
	row := []string{
		relID, r.YesNoResponseCode, r.DependentCode, r.MaintenanceTypeCode,
		models.Deref(r.MaintenanceReasonCode), models.Deref(r.BenefitStatusCode), models.Deref(r.MedicareStatusCode),
		models.Deref(r.OccupationLengthCode), models.Deref(r.HandicapIndicator),
	}

	var nm1 models.Name
	if r.Name != nil {
		nm1 = *r.Name
	}
	row = append(row, nm1.EntityIdentifierCode, nm1.EntityTypeQualifier, nm1.LastOrOrganizationName,
		models.Deref(nm1.First), models.Deref(nm1.Middle), models.Deref(nm1.IdentificationQualifier),
		models.Deref(nm1.IdentificationCode), models.Deref(nm1.EntityRelationshipCode),
		models.Deref(nm1.SecondEntityIdentifierCd))

	var per models.Contact
	if r.Contact != nil {
		per = *r.Contact
	}
	row = append(row, per.FunctionCode, models.Deref(per.EnumerationCode), per.CommunicationQualifier,
		per.CommunicationNumber)

	var n3 models.AddressLine
	if r.Address != nil {
		n3 = *r.Address
	}
	row = append(row, n3.Line1, models.Deref(n3.Line2))

	var n4 models.Location
	if r.Location != nil {
		n4 = *r.Location
	}
	row = append(row, n4.City, n4.StateOrProvince, n4.PostalCode, models.Deref(n4.CountryCode),
		models.Deref(n4.LocationIdentifier))

	var dmg models.Demographics
	if r.Demographics != nil {
		dmg = *r.Demographics
	}
	row = append(row, dmg.DateOfBirth, dmg.GenderCode, models.Deref(dmg.EthnicityCode))

	var hd models.Coverage
	if r.Coverage != nil {
		hd = *r.Coverage
	}
	return append(row, hd.MaintenanceReasonCode, models.Deref(hd.MaintenanceTypeCode), hd.SourceOfSubmissionCode,
		hd.PlanCoverageDescription, models.Deref(hd.EmployeeStatusCode))
}

func keyColumns(relID string, r models.MemberRecord) []string {
	key := []string{relID, "", "", "", "", ""}
	if r.Name != nil {
		key[1] = r.Name.LastOrOrganizationName
		key[2] = models.Deref(r.Name.First)
		key[3] = models.Deref(r.Name.Middle)
		key[5] = models.Deref(r.Name.IdentificationCode)
	}
	if r.Demographics != nil {
		key[4] = r.Demographics.DateOfBirth
	}
	return key
}
