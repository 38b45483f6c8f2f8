package service

import (
	"context"
	"fmt"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"
)

// VocabularyService handles users, words and memberships
type VocabularyService struct {
	userRepo repository.UserRepository
	wordRepo repository.WordRepository
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(userRepo repository.UserRepository, wordRepo repository.WordRepository) *VocabularyService {
	return &VocabularyService{
		userRepo: userRepo,
		wordRepo: wordRepo,
	}
}

// RegisterUser creates the user with the seed vocabulary or refreshes their profile.
// Reports whether the user is new.
func (s *VocabularyService) RegisterUser(ctx context.Context, userID int64, username, firstName string) (bool, error) {
	return s.userRepo.RegisterUser(ctx, domain.User{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
	})
}

// ListWords returns the user's words in alphabetical order
func (s *VocabularyService) ListWords(ctx context.Context, userID int64) ([]domain.Word, error) {
	return s.wordRepo.ListWords(ctx, userID)
}

// AddWord validates the pair and adds it to the user's list, joining an existing
// word of the same spelling. Returns the normalized english form.
func (s *VocabularyService) AddWord(ctx context.Context, userID int64, english, translation string) (string, error) {
	word, err := domain.NormalizeEnglish(english)
	if err != nil {
		return "", err
	}
	translation, err = domain.NormalizeTranslation(translation)
	if err != nil {
		return "", err
	}

	if err := s.wordRepo.AddWord(ctx, userID, word, translation); err != nil {
		return "", fmt.Errorf("failed to add word %q: %w", word, err)
	}
	return word, nil
}

// DeleteWord removes the word from the user's list; a missing membership is not an error
func (s *VocabularyService) DeleteWord(ctx context.Context, userID, wordID int64) error {
	if wordID <= 0 {
		return fmt.Errorf("%w: word id %d", domain.ErrInvalidInput, wordID)
	}
	if err := s.wordRepo.DeleteWord(ctx, userID, wordID); err != nil {
		return fmt.Errorf("failed to delete word %d: %w", wordID, err)
	}
	return nil
}

// WordCount returns the size of the user's study list
func (s *VocabularyService) WordCount(ctx context.Context, userID int64) (int, error) {
	return s.wordRepo.CountWords(ctx, userID)
}
