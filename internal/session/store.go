package session

import (
	"sync"
)

// MemStore is an in-memory Store. Sessions do not survive a restart; the
// tests use it, and it is good enough for a bot run without a database.
type MemStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

func NewMemStore() *MemStore {
	return &MemStore{sessions: make(map[int64]Session)}
}

func (s *MemStore) Get(chatID int64) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[chatID], nil
}

func (s *MemStore) Put(chatID int64, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = sess
	return nil
}

func (s *MemStore) Delete(chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
	return nil
}
