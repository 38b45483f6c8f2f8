package testutil

import (
	"wordtrainer/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, username, firstName string) domain.User {
	return domain.User{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
	}
}

// NewTestWord creates a seed word
func NewTestWord(id int64, english, translation string) *domain.Word {
	return &domain.Word{
		ID:          id,
		English:     english,
		Translation: translation,
	}
}

// NewTestOwnedWord creates a word added by ownerID
func NewTestOwnedWord(id int64, english, translation string, ownerID int64) *domain.Word {
	w := NewTestWord(id, english, translation)
	w.AddedBy = &ownerID
	return w
}
