package postgres

import (
	"context"
	"fmt"
	"testing"

	"wordtrainer/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var wordColumns = []string{"word_id", "english_word", "russian_translation", "added_by"}

func TestWordRepo_ListWords(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	userID := int64(123)

	rows := sqlmock.NewRows(wordColumns).
		AddRow(5, "apple", "яблоко", userID).
		AddRow(1, "red", "красный", nil)

	mock.ExpectQuery("SELECT w.word_id, w.english_word, w.russian_translation, w.added_by FROM words w INNER JOIN user_words uw ON w.word_id = uw.word_id WHERE uw.user_id = \\$1 ORDER BY w.english_word").
		WithArgs(userID).
		WillReturnRows(rows)

	words, err := repo.ListWords(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, words, 2)
	assert.Equal(t, "apple", words[0].English)
	assert.Equal(t, "яблоко", words[0].Translation)
	assert.True(t, words[0].OwnedBy(userID))
	assert.Equal(t, "red", words[1].English)
	assert.True(t, words[1].IsShared())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_ListWords_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	mock.ExpectQuery("SELECT w.word_id").
		WithArgs(int64(123)).
		WillReturnRows(sqlmock.NewRows(wordColumns))

	words, err := repo.ListWords(context.Background(), 123)

	assert.NoError(t, err)
	assert.NotNil(t, words)
	assert.Empty(t, words)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_ListWords_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	// Create rows with wrong column type to cause scan error
	rows := sqlmock.NewRows(wordColumns).
		AddRow("invalid", "apple", "яблоко", nil)

	mock.ExpectQuery("SELECT w.word_id").
		WithArgs(int64(123)).
		WillReturnRows(rows)

	words, err := repo.ListWords(context.Background(), 123)

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Nil(t, words)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_AddWord_NewWord(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	userID := int64(123)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO words \\(english_word, russian_translation, added_by\\) VALUES \\(\\$1, \\$2, \\$3\\) ON CONFLICT \\(english_word\\) DO NOTHING RETURNING word_id").
		WithArgs("apple", "яблоко", userID).
		WillReturnRows(sqlmock.NewRows([]string{"word_id"}).AddRow(23))
	mock.ExpectExec("INSERT INTO user_words \\(user_id, word_id\\) VALUES \\(\\$1, \\$2\\) ON CONFLICT").
		WithArgs(userID, int64(23)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.AddWord(context.Background(), userID, "apple", "яблоко")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_AddWord_JoinsExistingWord(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	userID := int64(456)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO words").
		WithArgs("dog", "собака", userID).
		WillReturnRows(sqlmock.NewRows([]string{"word_id"}))
	mock.ExpectQuery("SELECT word_id FROM words WHERE english_word = \\$1").
		WithArgs("dog").
		WillReturnRows(sqlmock.NewRows([]string{"word_id"}).AddRow(7))
	mock.ExpectExec("INSERT INTO user_words").
		WithArgs(userID, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.AddWord(context.Background(), userID, "dog", "собака")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_AddWord_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO words").
		WithArgs("apple", "яблоко", int64(123)).
		WillReturnError(fmt.Errorf("connection lost"))
	mock.ExpectRollback()

	err = repo.AddWord(context.Background(), 123, "apple", "яблоко")

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_DeleteWord(t *testing.T) {
	userID := int64(123)

	tests := []struct {
		name            string
		addedBy         interface{}
		expectWordQuery bool
	}{
		{
			name:            "own word is deleted",
			addedBy:         userID,
			expectWordQuery: true,
		},
		{
			name:            "seed word is kept",
			addedBy:         nil,
			expectWordQuery: false,
		},
		{
			name:            "other user's word is kept",
			addedBy:         int64(999),
			expectWordQuery: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewWordRepo(db)

			wordID := int64(5)

			mock.ExpectBegin()
			mock.ExpectQuery("SELECT added_by FROM words WHERE word_id = \\$1 FOR UPDATE").
				WithArgs(wordID).
				WillReturnRows(sqlmock.NewRows([]string{"added_by"}).AddRow(tt.addedBy))
			mock.ExpectExec("DELETE FROM user_words WHERE user_id = \\$1 AND word_id = \\$2").
				WithArgs(userID, wordID).
				WillReturnResult(sqlmock.NewResult(0, 1))
			if tt.expectWordQuery {
				mock.ExpectExec("DELETE FROM words WHERE word_id = \\$1 AND added_by = \\$2").
					WithArgs(wordID, userID).
					WillReturnResult(sqlmock.NewResult(0, 1))
			}
			mock.ExpectCommit()

			err = repo.DeleteWord(context.Background(), userID, wordID)

			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepo_DeleteWord_AlreadyGone(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT added_by FROM words").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"added_by"}))
	mock.ExpectCommit()

	err = repo.DeleteWord(context.Background(), 123, 5)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_CountWords(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM user_words WHERE user_id = \\$1").
		WithArgs(int64(123)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(22))

	count, err := repo.CountWords(context.Background(), 123)

	assert.NoError(t, err)
	assert.Equal(t, 22, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_GetRandomWord(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		expectedNil   bool
		expectedError bool
	}{
		{
			name:     "word found",
			mockRows: sqlmock.NewRows(wordColumns).AddRow(1, "cat", "кот", 123),
		},
		{
			name:        "no words",
			mockRows:    sqlmock.NewRows(wordColumns),
			expectedNil: true,
		},
		{
			name:          "scan error",
			mockRows:      sqlmock.NewRows(wordColumns).AddRow("invalid", "cat", "кот", nil),
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewWordRepo(db)

			mock.ExpectQuery("SELECT w.word_id, w.english_word, w.russian_translation, w.added_by FROM words w INNER JOIN user_words uw ON w.word_id = uw.word_id WHERE uw.user_id = \\$1 ORDER BY RANDOM\\(\\) LIMIT 1").
				WithArgs(int64(123)).
				WillReturnRows(tt.mockRows)

			word, err := repo.GetRandomWord(context.Background(), 123)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, word)
			} else {
				assert.Equal(t, "cat", word.English)
				assert.Equal(t, "кот", word.Translation)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepo_GetRandomWords(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	rows := sqlmock.NewRows(wordColumns).
		AddRow(2, "dog", "собака", nil).
		AddRow(3, "red", "красный", nil)

	mock.ExpectQuery("WHERE uw.user_id = \\$1 AND w.word_id <> \\$2 ORDER BY RANDOM\\(\\) LIMIT \\$3").
		WithArgs(int64(123), int64(1), 3).
		WillReturnRows(rows)

	words, err := repo.GetRandomWords(context.Background(), 123, 1, 3)

	assert.NoError(t, err)
	assert.Len(t, words, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_GetRandomWords_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	mock.ExpectQuery("SELECT w.word_id").
		WithArgs(int64(123), int64(1), 3).
		WillReturnError(fmt.Errorf("query error"))

	words, err := repo.GetRandomWords(context.Background(), 123, 1, 3)

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Nil(t, words)
	assert.NoError(t, mock.ExpectationsWereMet())
}
