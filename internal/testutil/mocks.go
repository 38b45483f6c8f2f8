package testutil

import (
	"context"
	"time"

	"wordtrainer/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user domain.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetState(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) SaveState(ctx context.Context, userID int64, blob string) error {
	args := m.Called(ctx, userID, blob)
	return args.Error(0)
}

func (m *MockUserRepository) ResetStaleStates(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) ListWords(ctx context.Context, userID int64) ([]domain.Word, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

func (m *MockWordRepository) AddWord(ctx context.Context, userID int64, english, translation string) error {
	args := m.Called(ctx, userID, english, translation)
	return args.Error(0)
}

func (m *MockWordRepository) DeleteWord(ctx context.Context, userID, wordID int64) error {
	args := m.Called(ctx, userID, wordID)
	return args.Error(0)
}

func (m *MockWordRepository) CountWords(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockWordRepository) GetRandomWord(ctx context.Context, userID int64) (*domain.Word, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) GetRandomWords(ctx context.Context, userID, excludeID int64, limit int) ([]domain.Word, error) {
	args := m.Called(ctx, userID, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}
