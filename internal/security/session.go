package security

import (
	"sync"

	"github.com/google/uuid"
)

// Session carries the authentication state of one signed-in client across
// requests. The session identifier travels inside the client's token; the
// authentication itself never leaves the server.
type Session struct {
	id string

	mu             sync.RWMutex
	authentication *Authentication
}

// ID returns the opaque session identifier.
func (s *Session) ID() string {
	return s.id
}

// Authentication returns the authentication currently attached to the
// session, or nil when the session is anonymous.
func (s *Session) Authentication() *Authentication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authentication
}

// SetAuthentication replaces the authentication attached to the session.
func (s *Session) SetAuthentication(authentication *Authentication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authentication = authentication
}

// SessionStore keeps active sessions in memory, keyed by session
// identifier. It is safe for concurrent use.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore returns an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create registers a new session holding the given authentication and
// returns it. The session identifier is a fresh UUID.
func (st *SessionStore) Create(authentication *Authentication) *Session {
	session := &Session{
		id:             uuid.NewString(),
		authentication: authentication,
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[session.id] = session

	return session
}

// Get returns the session with the given identifier, or false when no such
// session exists.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[id]
	return session, ok
}

// Delete removes the session with the given identifier. Deleting an unknown
// identifier is a no-op.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
