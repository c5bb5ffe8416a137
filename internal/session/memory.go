package session

import (
	"sync"
	"time"
)

// Store owns session lifetime. Sessions are created lazily on first access
// and never deleted; a completed order resets the record instead. Update
// serializes transitions per conversation id so concurrent updates for the
// same user cannot clobber each other, while distinct conversations proceed
// in parallel.
type Store interface {
	Get(conversationID int64) (Session, bool)
	Put(conversationID int64, s Session)
	Update(conversationID int64, fn func(*Session))
}

type entry struct {
	mu sync.Mutex
	s  Session
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[int64]*entry
	now     func() time.Time
}

// NewMemoryStore constructs the in-memory Store implementation.
func NewMemoryStore() Store {
	return &memoryStore{
		entries: make(map[int64]*entry),
		now:     time.Now,
	}
}

func (m *memoryStore) entryFor(conversationID int64) *entry {
	m.mu.RLock()
	e, ok := m.entries[conversationID]
	m.mu.RUnlock()
	if ok {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[conversationID]; ok {
		return e
	}
	e = &entry{s: New(conversationID, m.now())}
	m.entries[conversationID] = e
	return e
}

// Get returns a copy of the session if one exists.
func (m *memoryStore) Get(conversationID int64) (Session, bool) {
	m.mu.RLock()
	e, ok := m.entries[conversationID]
	m.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.s, true
}

// Put replaces the stored session.
func (m *memoryStore) Put(conversationID int64, s Session) {
	e := m.entryFor(conversationID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.s = s
}

// Update applies fn to the session under the per-conversation lock, creating
// the session on first contact.
func (m *memoryStore) Update(conversationID int64, fn func(*Session)) {
	e := m.entryFor(conversationID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.s)
}
