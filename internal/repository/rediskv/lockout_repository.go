package rediskv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tajwid-pintar-be/pkg/auth"

	"github.com/redis/go-redis/v9"
)

const lockoutKeyPrefix = "tajwid:lockout:"

// LockoutRepository persists lockout state in Redis so that it holds across
// server restarts and replicas.
type LockoutRepository struct {
	rdb       redis.Cmdable
	retention time.Duration
}

var _ auth.Store = &LockoutRepository{}

// NewLockoutRepository keeps each state for retention after its last write.
func NewLockoutRepository(rdb redis.Cmdable, retention time.Duration) *LockoutRepository {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &LockoutRepository{rdb: rdb, retention: retention}
}

func (r *LockoutRepository) Load(ctx context.Context, key string) (auth.State, error) {
	raw, err := r.rdb.Get(ctx, lockoutKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return auth.State{}, nil
	}
	if err != nil {
		return auth.State{}, fmt.Errorf("redis get lockout: %w", err)
	}

	var state auth.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return auth.State{}, fmt.Errorf("decode lockout state: %w", err)
	}
	return state, nil
}

func (r *LockoutRepository) Save(ctx context.Context, key string, state auth.State) error {
	if state.AttemptCount == 0 && state.LockUntil.IsZero() {
		if err := r.rdb.Del(ctx, lockoutKeyPrefix+key).Err(); err != nil {
			return fmt.Errorf("redis del lockout: %w", err)
		}
		return nil
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode lockout state: %w", err)
	}
	ttl := r.retention
	if until := time.Until(state.LockUntil); until > ttl {
		ttl = until
	}
	if err := r.rdb.Set(ctx, lockoutKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set lockout: %w", err)
	}
	return nil
}
