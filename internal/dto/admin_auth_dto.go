package dto

import "time"

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required,max=256"`
}

type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LockoutStatusResponse struct {
	Locked            bool `json:"locked"`
	RetryAfterSeconds int  `json:"retry_after_seconds"`
	RemainingAttempts int  `json:"remaining_attempts"`
}
