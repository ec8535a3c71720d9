package tablewise

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session carries the one table a user is currently working on. The
// hosting application passes the session into each handler and receives
// a new value back; there is no package-level current table. Uploading
// replaces the table wholesale, clearing discards it.
type Session struct {
	ID       uuid.UUID
	Name     string // source file name of the loaded table
	Table    *Table
	LoadedAt time.Time
}

// NewSession creates an empty session with a fresh identifier
func NewSession() Session {
	return Session{ID: uuid.New()}
}

// HasTable reports whether the session currently holds a table
func (s Session) HasTable() bool {
	return s.Table != nil
}

// WithTable returns a session holding the given table, replacing any
// previous one. The session identity is preserved.
func (s Session) WithTable(name string, t *Table) Session {
	return Session{
		ID:       s.ID,
		Name:     name,
		Table:    t,
		LoadedAt: time.Now(),
	}
}

// Clear returns a session with no table
func (s Session) Clear() Session {
	return Session{ID: s.ID}
}

// SessionStore is a concurrency-safe registry of sessions, keyed by
// session ID. It backs the HTTP front end; each interaction takes the
// session out, derives results, and puts the (possibly replaced) session
// back.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]Session
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]Session),
	}
}

// Put stores a session, replacing any previous value under the same ID
func (st *SessionStore) Put(s Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

// Get returns the session with the given ID
func (st *SessionStore) Get(id uuid.UUID) (Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes the session with the given ID
func (st *SessionStore) Delete(id uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len returns the number of stored sessions
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
