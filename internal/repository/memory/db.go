// Package memory keeps users, words and memberships in process memory.
// It is meant for local runs and tests; everything is lost on restart.
package memory

import (
	"sync"
	"time"

	"wordtrainer/internal/domain"
)

type userRow struct {
	user           domain.User
	stateBlob      string
	stateUpdatedAt time.Time
}

// DB is the shared in-memory dataset behind UserRepo and WordRepo.
// A single mutex makes every repository call atomic.
type DB struct {
	mu sync.Mutex

	users       map[int64]*userRow
	words       map[int64]*domain.Word
	byEnglish   map[string]int64
	memberships map[int64]map[int64]struct{}
	nextWordID  int64

	now func() time.Time
}

// NewDB creates a dataset holding the given seed words
func NewDB(seed []domain.Word) *DB {
	db := &DB{
		users:       make(map[int64]*userRow),
		words:       make(map[int64]*domain.Word),
		byEnglish:   make(map[string]int64),
		memberships: make(map[int64]map[int64]struct{}),
		now:         time.Now,
	}
	for _, w := range seed {
		db.insertWord(w.English, w.Translation, nil)
	}
	return db
}

func (db *DB) insertWord(english, translation string, addedBy *int64) *domain.Word {
	db.nextWordID++
	w := &domain.Word{
		ID:          db.nextWordID,
		English:     english,
		Translation: translation,
		AddedBy:     addedBy,
	}
	db.words[w.ID] = w
	db.byEnglish[english] = w.ID
	return w
}

func (db *DB) deleteWord(wordID int64) {
	w, ok := db.words[wordID]
	if !ok {
		return
	}
	delete(db.byEnglish, w.English)
	delete(db.words, wordID)
	for _, set := range db.memberships {
		delete(set, wordID)
	}
}

// userWords returns copies of the user's words
func (db *DB) userWords(userID int64) []domain.Word {
	set := db.memberships[userID]
	words := make([]domain.Word, 0, len(set))
	for wordID := range set {
		if w, ok := db.words[wordID]; ok {
			words = append(words, *w)
		}
	}
	return words
}
