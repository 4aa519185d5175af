package memory

import (
	"time"

	"tajwid-pintar-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps sessions for ttl after their last access.
// Expired items are purged every 10 minutes.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *SessionRepository) Save(session *entity.ChatSession) {
	r.cache.Set(session.Id, session, cache.DefaultExpiration)
}

// Get returns the session and extends its lifetime.
func (r *SessionRepository) Get(sessionID string) (*entity.ChatSession, bool) {
	x, found := r.cache.Get(sessionID)
	if !found {
		return nil, false
	}
	session := x.(*entity.ChatSession)
	r.cache.Set(sessionID, session, cache.DefaultExpiration)
	return session, true
}
