package models

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRepository is a testify mock of Store. It also stands in for the TxRepository
// returned by Begin.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateEnrollmentFile(ctx context.Context, file EnrollmentFile) (uint, error) {
	args := m.Called(ctx, file)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockRepository) UpdateEnrollmentFileImportStatus(ctx context.Context, fileID uint, importStatus string) error {
	args := m.Called(ctx, fileID, importStatus)
	return args.Error(0)
}

func (m *MockRepository) CreateMemberRecord(ctx context.Context, fileID uint, member MemberRecord) (uint, error) {
	args := m.Called(ctx, fileID, member)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockRepository) Begin(ctx context.Context) (TxRepository, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(TxRepository)
	return tx, args.Error(1)
}

func (m *MockRepository) Commit() error {
	return m.Called().Error(0)
}

func (m *MockRepository) Rollback() error {
	return m.Called().Error(0)
}
