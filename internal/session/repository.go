package session

import "sync"

// Repository stores live sessions.
type Repository interface {
	Save(s *Session)
	Get(id string) (*Session, bool)
	Delete(id string)
	Count() int
}

// InMemoryRepository is a mutex-guarded in-memory session store.
type InMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemoryRepository creates an empty session store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{sessions: make(map[string]*Session)}
}

func (r *InMemoryRepository) Save(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

func (r *InMemoryRepository) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *InMemoryRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *InMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
