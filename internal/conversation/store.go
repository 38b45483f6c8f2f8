package conversation

import (
	"context"
	"fmt"
	"sync"
)

// Repository persists encoded state blobs per user
type Repository interface {
	GetState(ctx context.Context, userID int64) (string, error)
	SaveState(ctx context.Context, userID int64, blob string) error
}

// Store loads and saves conversation states through the codec
type Store struct {
	repo Repository
}

// NewStore creates a new state store
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Load returns the user's current state. A corrupt blob yields Idle together with
// an ErrCorruptState error so the caller can decide to carry on.
func (s *Store) Load(ctx context.Context, userID int64) (State, error) {
	blob, err := s.repo.GetState(ctx, userID)
	if err != nil {
		return Idle(), fmt.Errorf("failed to load state: %w", err)
	}
	return Decode(blob)
}

// Save overwrites the user's state
func (s *Store) Save(ctx context.Context, userID int64, state State) error {
	blob, err := Encode(state)
	if err != nil {
		return err
	}
	if err := s.repo.SaveState(ctx, userID, blob); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Locker hands out one mutex per user so that a user's events are processed one at a time
type Locker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewLocker creates a new per-user locker
func NewLocker() *Locker {
	return &Locker{locks: make(map[int64]*sync.Mutex)}
}

// Lock blocks until userID's lock is held and returns the matching unlock func
func (l *Locker) Lock(userID int64) func() {
	l.mu.Lock()
	lock, exists := l.locks[userID]
	if !exists {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
