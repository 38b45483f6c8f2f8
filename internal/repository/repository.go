package repository

import (
	"context"
	"time"

	"wordtrainer/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	// RegisterUser creates the user together with memberships for every seed word,
	// or refreshes username and first name of an existing user. Reports whether
	// the user was created.
	RegisterUser(ctx context.Context, user domain.User) (bool, error)
	GetState(ctx context.Context, userID int64) (string, error)
	SaveState(ctx context.Context, userID int64, blob string) error
	ResetStaleStates(ctx context.Context, olderThan time.Duration) (int64, error)
}

// WordRepository defines word and membership data operations
type WordRepository interface {
	ListWords(ctx context.Context, userID int64) ([]domain.Word, error)
	AddWord(ctx context.Context, userID int64, english, translation string) error
	DeleteWord(ctx context.Context, userID, wordID int64) error
	CountWords(ctx context.Context, userID int64) (int, error)
	GetRandomWord(ctx context.Context, userID int64) (*domain.Word, error)
	GetRandomWords(ctx context.Context, userID, excludeID int64, limit int) ([]domain.Word, error)
}
