package export

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/CMSgov/edi834-app/edi834/constants"
	"github.com/CMSgov/edi834-app/edi834/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DBSink stores records through a models.Store. The enrollment file row tracks
// progress: it is created In-Progress and ends Completed or Failed. Member rows are
// written in one transaction, so a Failed file keeps none of them.
type DBSink struct {
	Store  models.Store
	Logger logrus.FieldLogger
}

func (s *DBSink) Write(ctx context.Context, source string, records []models.MemberRecord) error {
	file := models.EnrollmentFile{
		Name:         filepath.Base(strings.TrimPrefix(source, "s3://")),
		Timestamp:    time.Now(),
		ImportStatus: constants.ImportInprog,
	}

	fileID, err := s.Store.CreateEnrollmentFile(ctx, file)
	if err != nil {
		err = errors.Wrapf(err, "could not create enrollment file record for %s", file.Name)
		s.Logger.Error(err)
		return err
	}

	if err := s.storeMembers(ctx, fileID, records); err != nil {
		s.Logger.Error(err)
		s.updateStatus(ctx, fileID, constants.ImportFail)
		return err
	}

	if err := s.Store.UpdateEnrollmentFileImportStatus(ctx, fileID, constants.ImportComplete); err != nil {
		err = errors.Wrapf(err, "could not update enrollment file %d", fileID)
		s.Logger.Error(err)
		return err
	}

	s.Logger.Infof("Stored %d member records for enrollment file %s (id %d)", len(records), file.Name, fileID)
	return nil
}

func (s *DBSink) storeMembers(ctx context.Context, fileID uint, records []models.MemberRecord) error {
	tx, err := s.Store.Begin(ctx)
	if err != nil {
		return errors.Wrapf(err, "could not start transaction for enrollment file %d", fileID)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			s.Logger.Warnf("Failed to rollback transaction for enrollment file %d: %s", fileID, rbErr)
		}
	}()

	for i, r := range records {
		if _, err := tx.CreateMemberRecord(ctx, fileID, r); err != nil {
			return errors.Wrapf(err, "could not create member record %d for file %d", i+1, fileID)
		}
	}

	if err := tx.Commit(); err != nil {
		// a failed commit has already ended the transaction
		committed = true
		return errors.Wrapf(err, "could not commit member records for file %d", fileID)
	}
	committed = true
	return nil
}

func (s *DBSink) updateStatus(ctx context.Context, fileID uint, status string) {
	if err := s.Store.UpdateEnrollmentFileImportStatus(ctx, fileID, status); err != nil {
		s.Logger.Errorf("Could not set import status %s on enrollment file %d: %s", status, fileID, err)
	}
}
