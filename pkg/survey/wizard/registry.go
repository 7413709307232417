package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("wizard session not found")

const DEFAULT_SESSION_TTL = 2 * time.Hour

// Session binds one in-flight wizard run to the survey it collects for.
// Nothing is persisted until the run completes; abandoning a session simply
// lets it expire.
type Session struct {
	ID         string
	InstanceID string
	SurveyID   string
	SurveyorID string
	Wizard     *Wizard

	// PropertyID and SurveyVersion travel with the run so the completed
	// response can be persisted without reloading the survey. Set them right
	// after CreateSession, before the session id is shared.
	PropertyID    string
	SurveyVersion int

	lastAccess time.Time
}

// SessionRegistry is the process-local home of active wizard sessions.
// Access to each session's wizard must go through WithSession so that the
// single-user interaction sequence stays serialized.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	if ttl <= 0 {
		ttl = DEFAULT_SESSION_TTL
	}
	return &SessionRegistry{
		sessions: map[string]*Session{},
		ttl:      ttl,
	}
}

func (r *SessionRegistry) CreateSession(instanceID string, surveyID string, surveyorID string, w *Wizard) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneExpiredLocked()

	session := &Session{
		ID:         uuid.NewString(),
		InstanceID: instanceID,
		SurveyID:   surveyID,
		SurveyorID: surveyorID,
		Wizard:     w,
		lastAccess: time.Now(),
	}
	r.sessions[session.ID] = session
	return session
}

// WithSession runs fn while holding the registry lock, touching the
// session's last-access time.
func (r *SessionRegistry) WithSession(sessionID string, fn func(*Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if !ok || time.Since(session.lastAccess) > r.ttl {
		delete(r.sessions, sessionID)
		return ErrSessionNotFound
	}
	session.lastAccess = time.Now()
	return fn(session)
}

func (r *SessionRegistry) DropSession(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

func (r *SessionRegistry) ActiveSessionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneExpiredLocked()
	return len(r.sessions)
}

func (r *SessionRegistry) pruneExpiredLocked() {
	now := time.Now()
	for id, session := range r.sessions {
		if now.Sub(session.lastAccess) > r.ttl {
			delete(r.sessions, id)
		}
	}
}
