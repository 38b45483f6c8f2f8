package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wordtrainer/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// RegisterUser creates the user and grants every seed word on first contact.
// For known users only username and first name are refreshed.
func (r *UserRepo) RegisterUser(ctx context.Context, user domain.User) (bool, error) {
	var created bool

	err := runInTx(ctx, r.db, func(tx *sql.Tx) error {
		// xmax is zero only for freshly inserted rows
		query := `
			INSERT INTO users (user_id, username, first_name)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id)
			DO UPDATE SET username = EXCLUDED.username, first_name = EXCLUDED.first_name
			RETURNING (xmax = 0) AS inserted
		`
		if err := tx.QueryRowContext(ctx, query, user.UserID, user.Username, user.FirstName).Scan(&created); err != nil {
			return err
		}
		if !created {
			return nil
		}

		query = `
			INSERT INTO user_words (user_id, word_id)
			SELECT $1, word_id FROM words WHERE added_by IS NULL
			ON CONFLICT (user_id, word_id) DO NOTHING
		`
		_, err := tx.ExecContext(ctx, query, user.UserID)
		return err
	})
	if err != nil {
		return false, mapError(err)
	}

	return created, nil
}

// GetState returns the stored conversation blob, empty for unknown users
func (r *UserRepo) GetState(ctx context.Context, userID int64) (string, error) {
	var blob string
	query := `SELECT state_blob FROM users WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&blob)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", mapError(err)
	}

	return blob, nil
}

// SaveState overwrites the conversation blob
func (r *UserRepo) SaveState(ctx context.Context, userID int64, blob string) error {
	query := `
		UPDATE users
		SET state_blob = $2, state_updated_at = NOW()
		WHERE user_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, userID, blob)
	if err != nil {
		return mapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}

	return nil
}

// ResetStaleStates clears pending states untouched for longer than olderThan
func (r *UserRepo) ResetStaleStates(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `
		UPDATE users
		SET state_blob = '', state_updated_at = NOW()
		WHERE state_blob <> ''
			AND state_updated_at < NOW() - INTERVAL '1 second' * $1
	`
	res, err := r.db.ExecContext(ctx, query, int64(olderThan.Seconds()))
	if err != nil {
		return 0, mapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, mapError(err)
	}

	return affected, nil
}
