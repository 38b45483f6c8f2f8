package service

import (
	"context"
	"fmt"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"github.com/samber/lo"
)

// QuizService picks quiz questions
type QuizService struct {
	wordRepo repository.WordRepository
}

// NewQuizService creates a new quiz service
func NewQuizService(wordRepo repository.WordRepository) *QuizService {
	return &QuizService{wordRepo: wordRepo}
}

// placeholderOption fills the option list when the user has fewer than four words.
// Valid words never contain '_' or digits, so placeholders cannot collide with them.
func placeholderOption(n int) string {
	return fmt.Sprintf("word_%d", n)
}

// SelectQuestion picks a random word of the user and three distractors.
// Returns nil when the user has no words.
func (s *QuizService) SelectQuestion(ctx context.Context, userID int64) (*domain.Question, error) {
	target, err := s.wordRepo.GetRandomWord(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to pick word: %w", err)
	}
	if target == nil {
		return nil, nil
	}

	distractors, err := s.wordRepo.GetRandomWords(ctx, userID, target.ID, domain.OptionsPerQuestion-1)
	if err != nil {
		return nil, fmt.Errorf("failed to pick distractors: %w", err)
	}

	options := append([]string{target.English}, lo.Map(distractors, func(w domain.Word, _ int) string {
		return w.English
	})...)
	options = lo.Uniq(options)
	if len(options) > domain.OptionsPerQuestion {
		options = options[:domain.OptionsPerQuestion]
	}
	for len(options) < domain.OptionsPerQuestion {
		options = append(options, placeholderOption(len(options)))
	}

	return &domain.Question{
		Prompt:        target.Translation,
		CorrectAnswer: target.English,
		Options:       lo.Shuffle(options),
	}, nil
}
