package postgres

import (
	"context"
	"database/sql"
	"errors"

	"wordtrainer/internal/domain"
)

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db *sql.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB) *WordRepo {
	return &WordRepo{db: db}
}

const selectUserWords = `
	SELECT w.word_id, w.english_word, w.russian_translation, w.added_by
	FROM words w
	INNER JOIN user_words uw ON w.word_id = uw.word_id
`

// ListWords returns the user's words ordered by english form
func (r *WordRepo) ListWords(ctx context.Context, userID int64) ([]domain.Word, error) {
	query := selectUserWords + `
		WHERE uw.user_id = $1
		ORDER BY w.english_word
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	words, err := scanWords(rows)
	if err != nil {
		return nil, mapError(err)
	}
	return words, nil
}

// AddWord links the word to the user, creating it first if the spelling is new.
// english must already be normalized.
func (r *WordRepo) AddWord(ctx context.Context, userID int64, english, translation string) error {
	err := runInTx(ctx, r.db, func(tx *sql.Tx) error {
		var wordID int64

		query := `
			INSERT INTO words (english_word, russian_translation, added_by)
			VALUES ($1, $2, $3)
			ON CONFLICT (english_word) DO NOTHING
			RETURNING word_id
		`
		err := tx.QueryRowContext(ctx, query, english, translation, userID).Scan(&wordID)
		if errors.Is(err, sql.ErrNoRows) {
			// Spelling already taken: join the existing word
			query = `SELECT word_id FROM words WHERE english_word = $1`
			err = tx.QueryRowContext(ctx, query, english).Scan(&wordID)
		}
		if err != nil {
			return err
		}

		query = `
			INSERT INTO user_words (user_id, word_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, word_id) DO NOTHING
		`
		_, err = tx.ExecContext(ctx, query, userID, wordID)
		return err
	})

	return mapError(err)
}

// DeleteWord removes the word from the user's list. The word itself is deleted
// only when the user added it; seed words are never deleted.
func (r *WordRepo) DeleteWord(ctx context.Context, userID, wordID int64) error {
	err := runInTx(ctx, r.db, func(tx *sql.Tx) error {
		var addedBy sql.NullInt64

		query := `SELECT added_by FROM words WHERE word_id = $1 FOR UPDATE`
		err := tx.QueryRowContext(ctx, query, wordID).Scan(&addedBy)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		query = `DELETE FROM user_words WHERE user_id = $1 AND word_id = $2`
		if _, err := tx.ExecContext(ctx, query, userID, wordID); err != nil {
			return err
		}

		if !addedBy.Valid || addedBy.Int64 != userID {
			return nil
		}

		// Memberships of other users go away with the word (ON DELETE CASCADE)
		query = `DELETE FROM words WHERE word_id = $1 AND added_by = $2`
		_, err = tx.ExecContext(ctx, query, wordID, userID)
		return err
	})

	return mapError(err)
}

// CountWords returns the number of words in the user's list
func (r *WordRepo) CountWords(ctx context.Context, userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM user_words WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

// GetRandomWord returns a random word of the user, nil if the list is empty
func (r *WordRepo) GetRandomWord(ctx context.Context, userID int64) (*domain.Word, error) {
	var w domain.Word
	var addedBy sql.NullInt64
	query := selectUserWords + `
		WHERE uw.user_id = $1
		ORDER BY RANDOM()
		LIMIT 1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&w.ID, &w.English, &w.Translation, &addedBy)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}

	if addedBy.Valid {
		w.AddedBy = &addedBy.Int64
	}

	return &w, nil
}

// GetRandomWords returns up to limit distinct random words of the user other than excludeID
func (r *WordRepo) GetRandomWords(ctx context.Context, userID, excludeID int64, limit int) ([]domain.Word, error) {
	query := selectUserWords + `
		WHERE uw.user_id = $1 AND w.word_id <> $2
		ORDER BY RANDOM()
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, excludeID, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	words, err := scanWords(rows)
	if err != nil {
		return nil, mapError(err)
	}
	return words, nil
}

func scanWords(rows *sql.Rows) ([]domain.Word, error) {
	words := []domain.Word{}
	for rows.Next() {
		var w domain.Word
		var addedBy sql.NullInt64
		if err := rows.Scan(&w.ID, &w.English, &w.Translation, &addedBy); err != nil {
			return nil, err
		}
		if addedBy.Valid {
			owner := addedBy.Int64
			w.AddedBy = &owner
		}
		words = append(words, w)
	}
	return words, rows.Err()
}
