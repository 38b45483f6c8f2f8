package memory

import (
	"context"
	"fmt"
	"time"

	"wordtrainer/internal/domain"
)

// UserRepo implements repository.UserRepository on top of DB
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new in-memory user repository
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// RegisterUser creates the user with every seed word, or refreshes the profile of a known user
func (r *UserRepo) RegisterUser(ctx context.Context, user domain.User) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if row, exists := r.db.users[user.UserID]; exists {
		row.user.Username = user.Username
		row.user.FirstName = user.FirstName
		return false, nil
	}

	user.CreatedAt = r.db.now()
	r.db.users[user.UserID] = &userRow{user: user, stateUpdatedAt: user.CreatedAt}

	set := make(map[int64]struct{})
	for id, w := range r.db.words {
		if w.IsShared() {
			set[id] = struct{}{}
		}
	}
	r.db.memberships[user.UserID] = set

	return true, nil
}

// GetState returns the stored blob, empty for unknown users
func (r *UserRepo) GetState(ctx context.Context, userID int64) (string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if row, exists := r.db.users[userID]; exists {
		return row.stateBlob, nil
	}
	return "", nil
}

// SaveState overwrites the stored blob
func (r *UserRepo) SaveState(ctx context.Context, userID int64, blob string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, exists := r.db.users[userID]
	if !exists {
		return fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	row.stateBlob = blob
	row.stateUpdatedAt = r.db.now()
	return nil
}

// ResetStaleStates clears pending states untouched for longer than olderThan
func (r *UserRepo) ResetStaleStates(ctx context.Context, olderThan time.Duration) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := r.db.now()
	cutoff := now.Add(-olderThan)

	var reset int64
	for _, row := range r.db.users {
		if row.stateBlob != "" && row.stateUpdatedAt.Before(cutoff) {
			row.stateBlob = ""
			row.stateUpdatedAt = now
			reset++
		}
	}
	return reset, nil
}
