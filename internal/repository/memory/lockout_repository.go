package memory

import (
	"context"
	"time"

	"tajwid-pintar-be/pkg/auth"

	"github.com/patrickmn/go-cache"
)

// LockoutRepository keeps lockout state per client in process memory. State
// survives page reloads but not a server restart.
type LockoutRepository struct {
	cache *cache.Cache
}

var _ auth.Store = &LockoutRepository{}

func NewLockoutRepository(retention time.Duration) *LockoutRepository {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &LockoutRepository{cache: cache.New(retention, 10*time.Minute)}
}

func (r *LockoutRepository) Load(_ context.Context, key string) (auth.State, error) {
	if x, found := r.cache.Get(key); found {
		return x.(auth.State), nil
	}
	return auth.State{}, nil
}

func (r *LockoutRepository) Save(_ context.Context, key string, state auth.State) error {
	if state == (auth.State{}) {
		r.cache.Delete(key)
		return nil
	}
	r.cache.Set(key, state, cache.DefaultExpiration)
	return nil
}
