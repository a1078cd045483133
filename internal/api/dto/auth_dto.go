package dto

import "github.com/spec-kit/dispatch-dashboard/internal/domain"

// SignupRequest payload for POST /signup.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse mirrors the session store for the UI. The token itself is
// never echoed, only whether one is held.
type SessionResponse struct {
	IsAuthenticated bool                `json:"is_authenticated"`
	Loading         bool                `json:"loading"`
	HasToken        bool                `json:"has_token"`
	User            *domain.UserProfile `json:"user,omitempty"`
	ExpiresAt       string              `json:"expires_at,omitempty"`
}
