package service

import (
	"context"
	"fmt"
	"testing"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestVocabularyService_RegisterUser(t *testing.T) {
	ctx := context.Background()
	userRepo := new(testutil.MockUserRepository)
	wordRepo := new(testutil.MockWordRepository)

	user := testutil.NewTestUser(1, "alice", "Alice")
	userRepo.On("RegisterUser", ctx, user).Return(true, nil)

	service := NewVocabularyService(userRepo, wordRepo)

	created, err := service.RegisterUser(ctx, 1, "alice", "Alice")

	assert.NoError(t, err)
	assert.True(t, created)
	userRepo.AssertExpectations(t)
}

func TestVocabularyService_AddWord(t *testing.T) {
	tests := []struct {
		name          string
		english       string
		translation   string
		expectedWord  string
		mockError     error
		callsRepo     bool
		expectedError error
	}{
		{
			name:         "valid pair",
			english:      "apple",
			translation:  "яблоко",
			expectedWord: "apple",
			callsRepo:    true,
		},
		{
			name:         "word is normalized",
			english:      "  Ice Cream ",
			translation:  " мороженое ",
			expectedWord: "ice cream",
			callsRepo:    true,
		},
		{
			name:          "digits rejected",
			english:       "r2d2",
			translation:   "робот",
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:          "empty word",
			english:       "   ",
			translation:   "пусто",
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:          "empty translation",
			english:       "apple",
			translation:   "  ",
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:          "storage error",
			english:       "apple",
			translation:   "яблоко",
			expectedWord:  "apple",
			mockError:     fmt.Errorf("%w: connection lost", domain.ErrStorage),
			callsRepo:     true,
			expectedError: domain.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			userRepo := new(testutil.MockUserRepository)
			wordRepo := new(testutil.MockWordRepository)

			if tt.callsRepo {
				wordRepo.On("AddWord", ctx, int64(1), tt.expectedWord, mockTranslation(tt.translation)).Return(tt.mockError)
			}

			service := NewVocabularyService(userRepo, wordRepo)

			word, err := service.AddWord(ctx, 1, tt.english, tt.translation)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, word)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedWord, word)
			}

			if tt.callsRepo {
				wordRepo.AssertExpectations(t)
			} else {
				wordRepo.AssertNotCalled(t, "AddWord")
			}
		})
	}
}

func mockTranslation(s string) string {
	translation, _ := domain.NormalizeTranslation(s)
	return translation
}

func TestVocabularyService_DeleteWord(t *testing.T) {
	tests := []struct {
		name          string
		wordID        int64
		mockError     error
		callsRepo     bool
		expectedError error
	}{
		{
			name:      "deleted",
			wordID:    5,
			callsRepo: true,
		},
		{
			name:          "invalid id",
			wordID:        0,
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:          "storage error",
			wordID:        5,
			mockError:     fmt.Errorf("%w: timeout", domain.ErrStorage),
			callsRepo:     true,
			expectedError: domain.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			wordRepo := new(testutil.MockWordRepository)
			if tt.callsRepo {
				wordRepo.On("DeleteWord", ctx, int64(1), tt.wordID).Return(tt.mockError)
			}

			service := NewVocabularyService(new(testutil.MockUserRepository), wordRepo)

			err := service.DeleteWord(ctx, 1, tt.wordID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			wordRepo.AssertExpectations(t)
		})
	}
}

func TestVocabularyService_ListWordsAndCount(t *testing.T) {
	ctx := context.Background()
	wordRepo := new(testutil.MockWordRepository)
	words := []domain.Word{
		*testutil.NewTestOwnedWord(5, "apple", "яблоко", 1),
		*testutil.NewTestWord(1, "red", "красный"),
	}
	wordRepo.On("ListWords", ctx, int64(1)).Return(words, nil)
	wordRepo.On("CountWords", ctx, int64(1)).Return(2, nil)

	service := NewVocabularyService(new(testutil.MockUserRepository), wordRepo)

	list, err := service.ListWords(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, words, list)

	count, err := service.WordCount(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	wordRepo.AssertExpectations(t)
}
