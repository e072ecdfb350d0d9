package history

import (
	"context"

	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/schema"
	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of HistoryStore for testing.
type MockStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockStore{} // Compile-time check

// Record implements the HistoryStore interface.
func (m *MockStore) Record(ctx context.Context, rec schema.RunRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// List implements the HistoryStore interface.
func (m *MockStore) List(ctx context.Context, limit int) ([]schema.RunRecord, error) {
	args := m.Called(ctx, limit)
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockStore) GetStatus(ctx context.Context) (schema.HistoryStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Clear implements the HistoryStore interface.
func (m *MockStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close implements the HistoryStore interface.
func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
