package memory

import (
	"context"
	"fmt"
	"sort"

	"wordtrainer/internal/domain"

	"github.com/samber/lo"
)

// WordRepo implements repository.WordRepository on top of DB
type WordRepo struct {
	db *DB
}

// NewWordRepo creates a new in-memory word repository
func NewWordRepo(db *DB) *WordRepo {
	return &WordRepo{db: db}
}

// ListWords returns the user's words ordered by english form
func (r *WordRepo) ListWords(ctx context.Context, userID int64) ([]domain.Word, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	words := r.db.userWords(userID)
	sort.Slice(words, func(i, j int) bool {
		return words[i].English < words[j].English
	})
	return words, nil
}

// AddWord links the word to the user, creating it first if the spelling is new
func (r *WordRepo) AddWord(ctx context.Context, userID int64, english, translation string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	set, exists := r.db.memberships[userID]
	if !exists {
		return fmt.Errorf("%w: user %d", domain.ErrStorage, userID)
	}

	wordID, taken := r.db.byEnglish[english]
	if !taken {
		owner := userID
		wordID = r.db.insertWord(english, translation, &owner).ID
	}
	set[wordID] = struct{}{}
	return nil
}

// DeleteWord removes the membership and, for the word's owner, the word itself
func (r *WordRepo) DeleteWord(ctx context.Context, userID, wordID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	w, exists := r.db.words[wordID]
	if !exists {
		return nil
	}

	delete(r.db.memberships[userID], wordID)
	if w.OwnedBy(userID) {
		r.db.deleteWord(wordID)
	}
	return nil
}

// CountWords returns the number of words in the user's list
func (r *WordRepo) CountWords(ctx context.Context, userID int64) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return len(r.db.memberships[userID]), nil
}

// GetRandomWord returns a random word of the user, nil if the list is empty
func (r *WordRepo) GetRandomWord(ctx context.Context, userID int64) (*domain.Word, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	words := r.db.userWords(userID)
	if len(words) == 0 {
		return nil, nil
	}
	w := lo.Sample(words)
	return &w, nil
}

// GetRandomWords returns up to limit distinct random words of the user other than excludeID
func (r *WordRepo) GetRandomWords(ctx context.Context, userID, excludeID int64, limit int) ([]domain.Word, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	candidates := lo.Filter(r.db.userWords(userID), func(w domain.Word, _ int) bool {
		return w.ID != excludeID
	})
	return lo.Samples(candidates, limit), nil
}
