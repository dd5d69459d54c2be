package schema

import (
	"testing"

	ers "github.com/CMSgov/edi834-app/edi834/errors"
	"github.com/CMSgov/edi834-app/edi834/models"
	"github.com/CMSgov/edi834-app/edi834/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func TestMember_FieldCount(t *testing.T) {
	_, _, err := Member.Parse(segment.SplitFields("INS*Y*18"))
	var countErr *ers.FieldCountError
	require.ErrorAs(t, err, &countErr)
	assert.Equal(t, "INS", countErr.Tag)
	assert.Equal(t, 3, countErr.Needed)
	assert.Equal(t, 3, countErr.Got)

	member, warnings, err := Member.Parse(segment.SplitFields("INS*Y*18*030~"))
	assert.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, &models.MemberRecord{
		YesNoResponseCode:   "Y",
		DependentCode:       "18",
		MaintenanceTypeCode: "030",
	}, member)
}

func TestMember_OptionalFields(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected models.MemberRecord
		warnings []string
	}{
		{
			"reasonCode",
			"INS*Y*18*030*25",
			models.MemberRecord{YesNoResponseCode: "Y", DependentCode: "18", MaintenanceTypeCode: "030",
				MaintenanceReasonCode: ptr("25")},
			nil,
		},
		{
			"fullWidth",
			"INS*N*01*021*28*A*C**FT*N",
			models.MemberRecord{YesNoResponseCode: "N", DependentCode: "01", MaintenanceTypeCode: "021",
				MaintenanceReasonCode: ptr("28"), BenefitStatusCode: ptr("A"), MedicareStatusCode: ptr("C"),
				OccupationLengthCode: ptr("FT"), HandicapIndicator: ptr("N")},
			nil,
		},
		{
			"presentButEmpty",
			"INS*Y*18*030**A",
			models.MemberRecord{YesNoResponseCode: "Y", DependentCode: "18", MaintenanceTypeCode: "030",
				MaintenanceReasonCode: ptr(""), BenefitStatusCode: ptr("A")},
			nil,
		},
		{
			"invalidOptionalLeftUnset",
			"INS*Y*18*030*25*AB*C**FTX*N",
			models.MemberRecord{YesNoResponseCode: "Y", DependentCode: "18", MaintenanceTypeCode: "030",
				MaintenanceReasonCode: ptr("25"), MedicareStatusCode: ptr("C"), HandicapIndicator: ptr("N")},
			[]string{"Benefit Status Code", "Occupation Length Code"},
		},
		{
			"emptyOptionalWithMinimum",
			"INS*Y*18*030*25*",
			models.MemberRecord{YesNoResponseCode: "Y", DependentCode: "18", MaintenanceTypeCode: "030",
				MaintenanceReasonCode: ptr("25")},
			[]string{"Benefit Status Code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member, warnings, err := Member.Parse(segment.SplitFields(tt.line))
			require.NoError(t, err)
			assert.Equal(t, &tt.expected, member)

			var fields []string
			for _, w := range warnings {
				var fieldErr *ers.FieldValidationError
				require.ErrorAs(t, w, &fieldErr)
				assert.True(t, fieldErr.Optional)
				fields = append(fields, fieldErr.Field)
			}
			assert.Equal(t, tt.warnings, fields)
		})
	}
}

func TestRequiredFieldValidation(t *testing.T) {
	tests := []struct {
		name  string
		parse func([]string) error
		line  string
		field string
		value string
	}{
		{"insYesNoTooLong", parseWith(Member), "INS*YY*18*030", "Yes/No Response Code", "YY"},
		{"insDependentTooShort", parseWith(Member), "INS*Y*1*030", "Dependent Code", "1"},
		{"refEmptyIdentification", parseWith(Reference), "REF*0F*", "Reference Identification", ""},
		{"dtpShortDate", parseWith(DateSpan), "DTP*356*D8*202401", "Date Time Period", "202401"},
		{"nm1MissingLastName", parseWith(Name), "NM1*IL*1**Sam", "Name Last or Organization Name", ""},
		{"perLongQualifier", parseWith(Contact), "PER*IP**HPX*5555551234", "Communication Number Qualifier", "HPX"},
		{"n3EmptyLine", parseWith(Address), "N3*", "Address Information 1", ""},
		{"n4LongState", parseWith(Location), "N4*Anytown*CAL*90210", "State or Province Code", "CAL"},
		{"dmgWrongFormat", parseWith(Demographics), "DMG*D6*19800101*M", "Date Time Format Qualifier", "D6"},
		{"hdWrongSource", parseWith(Coverage), "HD*030**DEN*Dental", "Source of Submission Code", "DEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse(segment.SplitFields(tt.line))
			var fieldErr *ers.FieldValidationError
			require.ErrorAs(t, err, &fieldErr)
			assert.False(t, fieldErr.Optional)
			assert.Equal(t, tt.field, fieldErr.Field)
			assert.Equal(t, tt.value, fieldErr.Value)
			assert.Equal(t, segment.SplitFields(tt.line)[0], fieldErr.Tag)
		})
	}
}

func TestFieldCounts(t *testing.T) {
	tests := []struct {
		line   string
		parse  func([]string) error
		needed int
	}{
		{"REF*0F", parseWith(Reference), 2},
		{"DTP*356*D8", parseWith(DateSpan), 3},
		{"NM1*IL*1", parseWith(Name), 3},
		{"PER*IP**HP", parseWith(Contact), 4},
		{"N3", parseWith(Address), 1},
		{"N4*Anytown*CA", parseWith(Location), 3},
		{"DMG*D8*19800101", parseWith(Demographics), 3},
		{"HD*030**HLT", parseWith(Coverage), 4},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			err := tt.parse(segment.SplitFields(tt.line))
			var countErr *ers.FieldCountError
			require.ErrorAs(t, err, &countErr)
			assert.Equal(t, tt.needed, countErr.Needed)
			assert.Equal(t, len(segment.SplitFields(tt.line)), countErr.Got)
		})
	}
}

func TestSubSegments(t *testing.T) {
	ref, warnings, err := Reference.Parse(segment.SplitFields("REF*0F*123456789*Subscriber number"))
	assert.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, &models.Reference{Qualifier: "0F", Identification: "123456789", Description: ptr("Subscriber number")}, ref)

	dtp, _, err := DateSpan.Parse(segment.SplitFields("DTP*356*D8*20240101"))
	assert.NoError(t, err)
	assert.Equal(t, &models.DateSpan{Qualifier: "356", FormatQualifier: "D8", Period: "20240101"}, dtp)

	name, _, err := Name.Parse(segment.SplitFields("NM1*74*1*Smith*Sam"))
	assert.NoError(t, err)
	assert.Equal(t, &models.Name{EntityIdentifierCode: "74", EntityTypeQualifier: "1",
		LastOrOrganizationName: "Smith", First: ptr("Sam")}, name)

	name, _, err = Name.Parse(segment.SplitFields("NM1*IL*1*Smith*Sam*Q*34*123456789*01*IL"))
	assert.NoError(t, err)
	assert.Equal(t, &models.Name{EntityIdentifierCode: "IL", EntityTypeQualifier: "1",
		LastOrOrganizationName: "Smith", First: ptr("Sam"), Middle: ptr("Q"), IdentificationQualifier: ptr("34"),
		IdentificationCode: ptr("123456789"), EntityRelationshipCode: ptr("01"), SecondEntityIdentifierCd: ptr("IL")}, name)

	per, _, err := Contact.Parse(segment.SplitFields("PER*IP**HP*5555551234"))
	assert.NoError(t, err)
	assert.Equal(t, &models.Contact{FunctionCode: "IP", EnumerationCode: ptr(""), CommunicationQualifier: "HP",
		CommunicationNumber: "5555551234"}, per)

	n3, _, err := Address.Parse(segment.SplitFields("N3*123 Main St*Apt 4"))
	assert.NoError(t, err)
	assert.Equal(t, &models.AddressLine{Line1: "123 Main St", Line2: ptr("Apt 4")}, n3)

	n4, warnings, err := Location.Parse(segment.SplitFields("N4*Anytown*CA*90210*X*CY01"))
	assert.NoError(t, err)
	assert.Len(t, warnings, 1)
	assert.Equal(t, &models.Location{City: "Anytown", StateOrProvince: "CA", PostalCode: "90210",
		LocationIdentifier: ptr("CY01")}, n4)

	dmg, _, err := Demographics.Parse(segment.SplitFields("DMG*D8*19800101*M*7"))
	assert.NoError(t, err)
	assert.Equal(t, &models.Demographics{DateFormatQualifier: "D8", DateOfBirth: "19800101", GenderCode: "M",
		EthnicityCode: ptr("7")}, dmg)

	hd, _, err := Coverage.Parse(segment.SplitFields("HD*030**HLT*Gold"))
	assert.NoError(t, err)
	assert.Equal(t, &models.Coverage{MaintenanceReasonCode: "030", MaintenanceTypeCode: ptr(""),
		SourceOfSubmissionCode: "HLT", PlanCoverageDescription: "Gold"}, hd)

	hd, _, err = Coverage.Parse(segment.SplitFields("HD*021*025*HLT*Silver PPO*FAM"))
	assert.NoError(t, err)
	assert.Equal(t, &models.Coverage{MaintenanceReasonCode: "021", MaintenanceTypeCode: ptr("025"),
		SourceOfSubmissionCode: "HLT", PlanCoverageDescription: "Silver PPO", EmployeeStatusCode: ptr("FAM")}, hd)
}

func TestOptionalViolationKeepsLaterFields(t *testing.T) {
	longName := "Bartholomew-Maximilian-Christopher-Alexander"
	name, warnings, err := Name.Parse(segment.SplitFields("NM1*IL*1*Smith*" + longName + "*Q"))
	assert.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Nil(t, name.First)
	assert.Equal(t, ptr("Q"), name.Middle)
	assert.Contains(t, warnings[0].Error(), "exceeds maximum 35")
}

func TestHighestRequired(t *testing.T) {
	assert.Equal(t, 3, Member.HighestRequired())
	assert.Equal(t, 4, Contact.HighestRequired())
	assert.Equal(t, 4, Coverage.HighestRequired())
	assert.Equal(t, 0, Schema[models.Reference]{}.HighestRequired())
}

func parseWith[T any](s Schema[T]) func([]string) error {
	return func(fields []string) error {
		_, _, err := s.Parse(fields)
		return err
	}
}
