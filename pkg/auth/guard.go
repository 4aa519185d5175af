package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	DefaultThreshold    = 3
	DefaultLockDuration = 30 * time.Second
	DefaultDelay        = time.Second
)

// State is the persisted lockout state of one client. A zero LockUntil means
// the client is open.
type State struct {
	AttemptCount int       `json:"attempt_count"`
	LockUntil    time.Time `json:"lock_until"`
}

func (s State) LockedAt(now time.Time) bool {
	return !s.LockUntil.IsZero() && now.Before(s.LockUntil)
}

// Store persists State per client key. Load returns the zero State for an
// unknown key.
type Store interface {
	Load(ctx context.Context, key string) (State, error)
	Save(ctx context.Context, key string, state State) error
}

// Verifier compares a credential. An error means the comparison itself could
// not run and does not count as a failed attempt.
type Verifier func(ctx context.Context, credential string) (bool, error)

type Outcome string

const (
	OutcomeAuthenticated Outcome = "authenticated"
	OutcomeRejected      Outcome = "rejected"
	OutcomeLocked        Outcome = "locked"
)

type Result struct {
	Outcome           Outcome
	RemainingAttempts int
	LockUntil         time.Time
}

var ErrEmptyKey = errors.New("lockout key is required")

type Guard struct {
	store     Store
	verify    Verifier
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error
	threshold int
	lockFor   time.Duration
	delay     time.Duration

	mu sync.Mutex
}

type Option func(*Guard)

func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// WithSleeper replaces the delay implementation, mostly for tests.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(g *Guard) { g.sleep = sleep }
}

func WithThreshold(n int) Option {
	return func(g *Guard) {
		if n > 0 {
			g.threshold = n
		}
	}
}

func WithLockDuration(d time.Duration) Option {
	return func(g *Guard) {
		if d > 0 {
			g.lockFor = d
		}
	}
}

func WithDelay(d time.Duration) Option {
	return func(g *Guard) {
		if d >= 0 {
			g.delay = d
		}
	}
}

func NewGuard(store Store, verify Verifier, opts ...Option) *Guard {
	g := &Guard{
		store:     store,
		verify:    verify,
		now:       time.Now,
		sleep:     sleepContext,
		threshold: DefaultThreshold,
		lockFor:   DefaultLockDuration,
		delay:     DefaultDelay,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Attempt runs one credential check for key. Every call waits the fixed delay
// first, whatever the outcome. While locked the verifier is not called.
func (g *Guard) Attempt(ctx context.Context, key, credential string) (Result, error) {
	if err := g.sleep(ctx, g.delay); err != nil {
		return Result{}, err
	}
	if key == "" {
		return Result{}, ErrEmptyKey
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	state, err := g.store.Load(ctx, key)
	if err != nil {
		return Result{}, fmt.Errorf("load lockout state: %w", err)
	}

	if state.LockedAt(now) {
		return Result{Outcome: OutcomeLocked, LockUntil: state.LockUntil}, nil
	}
	if !state.LockUntil.IsZero() {
		state = State{}
	}

	ok, err := g.verify(ctx, credential)
	if err != nil {
		return Result{}, fmt.Errorf("verify credential: %w", err)
	}

	if ok {
		if err := g.store.Save(ctx, key, State{}); err != nil {
			return Result{}, fmt.Errorf("save lockout state: %w", err)
		}
		return Result{Outcome: OutcomeAuthenticated, RemainingAttempts: g.threshold}, nil
	}

	state.AttemptCount++
	result := Result{Outcome: OutcomeRejected, RemainingAttempts: g.threshold - state.AttemptCount}
	if state.AttemptCount >= g.threshold {
		state = State{LockUntil: now.Add(g.lockFor)}
		result = Result{Outcome: OutcomeLocked, LockUntil: state.LockUntil}
	}
	if err := g.store.Save(ctx, key, state); err != nil {
		return Result{}, fmt.Errorf("save lockout state: %w", err)
	}
	return result, nil
}

// Status reports the current state of key and how long it stays locked.
func (g *Guard) Status(ctx context.Context, key string) (State, time.Duration, error) {
	if key == "" {
		return State{}, 0, ErrEmptyKey
	}
	state, err := g.store.Load(ctx, key)
	if err != nil {
		return State{}, 0, fmt.Errorf("load lockout state: %w", err)
	}
	now := g.now()
	if !state.LockedAt(now) {
		if !state.LockUntil.IsZero() {
			state = State{}
		}
		return state, 0, nil
	}
	return state, state.LockUntil.Sub(now), nil
}

func (g *Guard) Threshold() int {
	return g.threshold
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
