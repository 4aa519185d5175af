package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tajwid-pintar-be/internal/dto"
	"tajwid-pintar-be/internal/pkg/logger"
	"tajwid-pintar-be/internal/pkg/serverutils"
	"tajwid-pintar-be/pkg/auth"
	"tajwid-pintar-be/pkg/events"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const AdminSubject = "admin"

var ErrAdminNotConfigured = errors.New("admin password is not configured")

// LoginRejectedError is a wrong password that did not yet lock the client.
type LoginRejectedError struct {
	RemainingAttempts int
}

func (e *LoginRejectedError) Error() string {
	return fmt.Sprintf("invalid credentials, %d attempts remaining", e.RemainingAttempts)
}

// LockedOutError is returned for every attempt made while a lock is active,
// including the attempt that triggered it.
type LockedOutError struct {
	RetryAfter time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("too many failed attempts, retry in %s", e.RetryAfter.Round(time.Second))
}

type IAdminAuthService interface {
	Login(ctx context.Context, clientKey string, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
	LockoutStatus(ctx context.Context, clientKey string) (*dto.LockoutStatusResponse, error)
}

type AdminAuthConfig struct {
	PasswordHash     string
	JWTSecret        []byte
	TokenTTL         time.Duration
	LockoutThreshold int
	LockoutDuration  time.Duration
	AttemptDelay     time.Duration
}

type adminAuthService struct {
	guard     *auth.Guard
	publisher events.Publisher
	audit     logger.ILogger
	cfg       AdminAuthConfig
	now       func() time.Time
}

func NewAdminAuthService(
	store auth.Store,
	publisher events.Publisher,
	audit logger.ILogger,
	cfg AdminAuthConfig,
	opts ...auth.Option,
) IAdminAuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	s := &adminAuthService{
		publisher: publisher,
		audit:     audit,
		cfg:       cfg,
		now:       time.Now,
	}
	guardOpts := []auth.Option{
		auth.WithThreshold(cfg.LockoutThreshold),
		auth.WithLockDuration(cfg.LockoutDuration),
		auth.WithDelay(cfg.AttemptDelay),
	}
	s.guard = auth.NewGuard(store, s.verifyPassword, append(guardOpts, opts...)...)
	return s
}

func (s *adminAuthService) verifyPassword(_ context.Context, password string) (bool, error) {
	if s.cfg.PasswordHash == "" {
		return false, ErrAdminNotConfigured
	}
	err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *adminAuthService) Login(ctx context.Context, clientKey string, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	result, err := s.guard.Attempt(ctx, clientKey, req.Password)
	if err != nil {
		return nil, err
	}

	switch result.Outcome {
	case auth.OutcomeLocked:
		retryAfter := result.LockUntil.Sub(s.now())
		if retryAfter < 0 {
			retryAfter = 0
		}
		s.record(ctx, events.TypeAdminLocked, clientKey, map[string]interface{}{"lock_until": result.LockUntil})
		return nil, &LockedOutError{RetryAfter: retryAfter}

	case auth.OutcomeRejected:
		s.record(ctx, events.TypeAdminLoginRejected, clientKey, map[string]interface{}{"remaining_attempts": result.RemainingAttempts})
		return nil, &LoginRejectedError{RemainingAttempts: result.RemainingAttempts}
	}

	expiresAt := s.now().Add(s.cfg.TokenTTL)
	claims := jwt.MapClaims{
		"user_id": AdminSubject,
		"role":    serverutils.RoleAdmin,
		"iat":     s.now().Unix(),
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	s.record(ctx, events.TypeAdminLoginSucceeded, clientKey, nil)
	return &dto.AdminLoginResponse{Token: signedToken, ExpiresAt: expiresAt}, nil
}

func (s *adminAuthService) LockoutStatus(ctx context.Context, clientKey string) (*dto.LockoutStatusResponse, error) {
	state, retryAfter, err := s.guard.Status(ctx, clientKey)
	if err != nil {
		return nil, err
	}
	res := &dto.LockoutStatusResponse{
		Locked:            retryAfter > 0,
		RetryAfterSeconds: int((retryAfter + time.Second - 1) / time.Second),
		RemainingAttempts: s.guard.Threshold() - state.AttemptCount,
	}
	if res.Locked {
		res.RemainingAttempts = 0
	}
	return res, nil
}

// record writes the audit trail and publishes the attempt. Neither may fail
// the login.
func (s *adminAuthService) record(ctx context.Context, eventType, clientKey string, extra map[string]interface{}) {
	details := map[string]interface{}{"client": clientKey}
	for k, v := range extra {
		details[k] = v
	}

	switch eventType {
	case events.TypeAdminLoginSucceeded:
		s.audit.Info("ADMIN_AUTH", "Admin login succeeded", details)
	default:
		s.audit.Warn("ADMIN_AUTH", eventType, details)
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.New(eventType, details)); err != nil {
		s.audit.Error("ADMIN_AUTH", "Failed to publish auth event", map[string]interface{}{"error": err.Error()})
	}
}
