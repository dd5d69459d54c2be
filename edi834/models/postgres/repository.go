package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/CMSgov/edi834-app/edi834/models"
	"github.com/huandu/go-sqlbuilder"
)

type queryable interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type executable interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

const (
	sqlFlavor = sqlbuilder.PostgreSQL
)

// Ensure Repository satisfies the interfaces
var (
	_ models.Store        = &Repository{}
	_ models.TxRepository = &Tx{}
)

type Repository struct {
	queryable
	executable

	// db is nil for repositories bound to a transaction
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db, db, db}
}

func NewRepositoryTx(tx *sql.Tx) *Repository {
	return &Repository{tx, tx, nil}
}

// Tx is a Repository writing through an open transaction.
type Tx struct {
	*Repository
	tx *sql.Tx
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// Begin starts a transaction and returns a repository bound to it.
func (r *Repository) Begin(ctx context.Context) (models.TxRepository, error) {
	if r.db == nil {
		return nil, errors.New("repository is already bound to a transaction")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{Repository: NewRepositoryTx(tx), tx: tx}, nil
}

func (r *Repository) CreateEnrollmentFile(ctx context.Context, file models.EnrollmentFile) (uint, error) {
	// User raw builder since we need to retrieve the associated ID
	query, args := sqlbuilder.Buildf(`INSERT INTO enrollment_files
		(name, timestamp, import_status) VALUES
		(%s, %s, %s) RETURNING id`,
		file.Name, file.Timestamp, file.ImportStatus).
		BuildWithFlavor(sqlFlavor)

	var id uint
	if err := r.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

func (r *Repository) UpdateEnrollmentFileImportStatus(ctx context.Context, fileID uint, importStatus string) error {
	ub := sqlFlavor.NewUpdateBuilder().Update("enrollment_files")
	ub.Set(ub.Assign("import_status", importStatus))
	ub.Where(ub.Equal("id", fileID))

	query, args := ub.Build()
	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return fmt.Errorf("EnrollmentFile %d not updated, no row found", fileID)
	}

	return nil
}

var memberColumns = []string{
	"file_id", "yes_no_response_code", "dependent_code", "maintenance_type_code", "maintenance_reason_code",
	"benefit_status_code", "medicare_status_code", "occupation_length_code", "handicap_indicator",
	"entity_identifier_code", "entity_type_qualifier", "last_name", "first_name", "middle_name",
	"id_code_qualifier", "id_code", "entity_relationship_code", "second_entity_identifier_code",
	"contact_function_code", "contact_enumeration_code", "contact_qualifier", "contact_number",
	"address_line_1", "address_line_2",
	"city", "state", "postal_code", "country_code", "location_identifier",
	"date_format_qualifier", "date_of_birth", "gender_code", "ethnicity_code",
	"coverage_maintenance_reason_code", "coverage_maintenance_type_code", "source_of_submission_code",
	"plan_coverage_description", "employee_status_code",
}

// CreateMemberRecord stores member along with its references and date spans, returning
// the new member's id.
func (r *Repository) CreateMemberRecord(ctx context.Context, fileID uint, member models.MemberRecord) (uint, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("%s, ", len(memberColumns)), ", ")
	query, args := sqlbuilder.Buildf(
		fmt.Sprintf("INSERT INTO enrollment_members (%s) VALUES (%s) RETURNING id",
			strings.Join(memberColumns, ", "), placeholders),
		memberValues(fileID, member)...).
		BuildWithFlavor(sqlFlavor)

	var id uint
	if err := r.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}

	if len(member.References) > 0 {
		ib := sqlFlavor.NewInsertBuilder().InsertInto("enrollment_references").
			Cols("member_id", "qualifier", "identification", "description")
		for _, ref := range member.References {
			ib.Values(id, ref.Qualifier, ref.Identification, nullable(ref.Description))
		}
		query, args := ib.Build()
		if _, err := r.ExecContext(ctx, query, args...); err != nil {
			return 0, err
		}
	}

	if len(member.DateSpans) > 0 {
		ib := sqlFlavor.NewInsertBuilder().InsertInto("enrollment_dates").
			Cols("member_id", "qualifier", "format_qualifier", "period")
		for _, dtp := range member.DateSpans {
			ib.Values(id, dtp.Qualifier, dtp.FormatQualifier, dtp.Period)
		}
		query, args := ib.Build()
		if _, err := r.ExecContext(ctx, query, args...); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// memberValues lines up with memberColumns. Absent sub-segments and fields are NULL.
func memberValues(fileID uint, m models.MemberRecord) []interface{} {
	values := []interface{}{
		fileID, m.YesNoResponseCode, m.DependentCode, m.MaintenanceTypeCode, nullable(m.MaintenanceReasonCode),
		nullable(m.BenefitStatusCode), nullable(m.MedicareStatusCode), nullable(m.OccupationLengthCode),
		nullable(m.HandicapIndicator),
	}

	if n := m.Name; n != nil {
		values = append(values, n.EntityIdentifierCode, n.EntityTypeQualifier, n.LastOrOrganizationName,
			nullable(n.First), nullable(n.Middle), nullable(n.IdentificationQualifier), nullable(n.IdentificationCode),
			nullable(n.EntityRelationshipCode), nullable(n.SecondEntityIdentifierCd))
	} else {
		values = append(values, nil, nil, nil, nil, nil, nil, nil, nil, nil)
	}

	if c := m.Contact; c != nil {
		values = append(values, c.FunctionCode, nullable(c.EnumerationCode), c.CommunicationQualifier, c.CommunicationNumber)
	} else {
		values = append(values, nil, nil, nil, nil)
	}

	if a := m.Address; a != nil {
		values = append(values, a.Line1, nullable(a.Line2))
	} else {
		values = append(values, nil, nil)
	}

	if l := m.Location; l != nil {
		values = append(values, l.City, l.StateOrProvince, l.PostalCode, nullable(l.CountryCode), nullable(l.LocationIdentifier))
	} else {
		values = append(values, nil, nil, nil, nil, nil)
	}

	if d := m.Demographics; d != nil {
		values = append(values, d.DateFormatQualifier, d.DateOfBirth, d.GenderCode, nullable(d.EthnicityCode))
	} else {
		values = append(values, nil, nil, nil, nil)
	}

	if c := m.Coverage; c != nil {
		values = append(values, c.MaintenanceReasonCode, nullable(c.MaintenanceTypeCode), c.SourceOfSubmissionCode,
			c.PlanCoverageDescription, nullable(c.EmployeeStatusCode))
	} else {
		values = append(values, nil, nil, nil, nil, nil)
	}

	return values
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
