package session

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/validaeja/validaeja-backend/internal/analysis/domain"
)

// State is the interaction state of an analysis session
type State string

const (
	// StateAwaitingInput means no result is stored; the upload control
	// is available and an error message may be present.
	StateAwaitingInput State = "awaiting_input"

	// StateShowingResult means a complete AnalysisResult is stored.
	StateShowingResult State = "showing_result"
)

// Session holds the interaction state for one user flow: at most one
// stored result, one error message and the completion state.
type Session struct {
	ID           string                 `json:"session_id"`
	State        State                  `json:"state"`
	Result       *domain.AnalysisResult `json:"result,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// clone returns a shallow copy. The Result pointer is shared, which is
// safe because an AnalysisResult is immutable once stored.
func (sess *Session) clone() *Session {
	if sess == nil {
		return nil
	}
	c := *sess
	return &c
}

// Store provides in-memory storage for analysis sessions. Sessions are
// automatically cleaned up after a TTL.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewStore creates a new in-memory session store with the given TTL
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
	go s.cleanupLoop()
	return s
}

// GenerateSessionID creates a cryptographically random session ID
func GenerateSessionID() string {
	b := make([]byte, 16)
	rand.Read(b)
	const hex = "0123456789abcdef"
	id := make([]byte, 32)
	for i, v := range b {
		id[i*2] = hex[v>>4]
		id[i*2+1] = hex[v&0x0f]
	}
	return string(id)
}

// Create stores a new session in the awaiting-input state
func (s *Store) Create() *Session {
	now := time.Now()
	sess := &Session{
		ID:        GenerateSessionID(),
		State:     StateAwaitingInput,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess.clone()
}

// Get retrieves a session by ID. The returned session is a snapshot;
// later store updates do not mutate it.
func (s *Store) Get(sessionID string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID].clone()
}

// Complete transitions a session to showing-result with the given result.
// The stored result is replaced atomically; any previous error is cleared.
func (s *Store) Complete(sessionID string, result *domain.AnalysisResult) *Session {
	return s.update(sessionID, func(sess *Session) {
		sess.State = StateShowingResult
		sess.Result = result
		sess.ErrorMessage = ""
	})
}

// Fail records an error message. The session stays in awaiting-input and
// no result is stored.
func (s *Store) Fail(sessionID string, message string) *Session {
	return s.update(sessionID, func(sess *Session) {
		sess.State = StateAwaitingInput
		sess.Result = nil
		sess.ErrorMessage = message
	})
}

// Reset clears the stored result and error, returning the session to
// awaiting-input so another document can be analyzed.
func (s *Store) Reset(sessionID string) *Session {
	return s.update(sessionID, func(sess *Session) {
		sess.State = StateAwaitingInput
		sess.Result = nil
		sess.ErrorMessage = ""
	})
}

// Delete removes a session from the store
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *Store) update(sessionID string, fn func(*Session)) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	fn(sess)
	sess.UpdatedAt = time.Now()
	return sess.clone()
}

// cleanupLoop periodically removes expired sessions
func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for range ticker.C {
		s.cleanup()
	}
}

func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
