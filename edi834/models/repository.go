package models

import (
	"context"
)

// Repository contains methods needed to persist enrollment files and their member records.
type Repository interface {
	CreateEnrollmentFile(ctx context.Context, file EnrollmentFile) (uint, error)
	UpdateEnrollmentFileImportStatus(ctx context.Context, fileID uint, importStatus string) error
	CreateMemberRecord(ctx context.Context, fileID uint, member MemberRecord) (uint, error)
}

// A TxRepository is a Repository whose writes become visible together on Commit.
type TxRepository interface {
	Repository
	Commit() error
	Rollback() error
}

// A Store is a Repository that can also open transactions.
type Store interface {
	Repository
	Begin(ctx context.Context) (TxRepository, error)
}
