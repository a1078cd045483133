// Package auth layers the dispatcher account operations on the backend client.
package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/dispatch-dashboard/internal/backend"
	"github.com/spec-kit/dispatch-dashboard/internal/credentials"
	"github.com/spec-kit/dispatch-dashboard/internal/domain"
)

// Service owns the rule for persisting a returned credential. Every
// operation returns the backend Envelope; callers decide UI messaging.
type Service struct {
	client *backend.Client
	creds  *credentials.Store
	logger *zap.Logger
}

// NewService builds the service.
func NewService(client *backend.Client, creds *credentials.Store, logger *zap.Logger) *Service {
	return &Service{client: client, creds: creds, logger: logger}
}

// SignupParams carries the new-account fields.
type SignupParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Signup creates an account. The envelope is returned unmodified.
func (s *Service) Signup(ctx context.Context, params SignupParams) backend.Envelope {
	return s.client.Post(ctx, "/auth/signup", params, backend.Options{})
}

// Login authenticates. When the response body carries a token it is
// persisted to the fallback store; a persistence failure does not fail the
// login, since the server may also have set a session cookie.
func (s *Service) Login(ctx context.Context, username, password string) backend.Envelope {
	env := s.client.Post(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, backend.Options{})

	if env.Success {
		if tok := tokenFromPayload(env.Data); tok != "" {
			if err := s.creds.Save(tok); err != nil {
				s.logger.Warn("persist login token", zap.Error(err))
			}
		}
	}
	return env
}

// Token resolves the current credential, cookie first.
func (s *Service) Token() (string, bool) {
	return s.client.Token()
}

// Logout invalidates the server session best-effort and always clears the
// local fallback token. It never returns an error: it runs during teardown
// and navigation flows that must not be blocked.
func (s *Service) Logout(ctx context.Context) {
	if env := s.client.Post(ctx, "/auth/logout", struct{}{}, backend.Options{}); !env.Success {
		s.logger.Debug("server logout skipped", zap.String("error", env.Message()))
	}
	if err := s.creds.Remove(); err != nil {
		s.logger.Warn("clear stored token", zap.Error(err))
	}
}

// FetchProfile verifies the session; the server decides from the cookie or
// the bearer credential.
func (s *Service) FetchProfile(ctx context.Context) backend.Envelope {
	return s.client.Post(ctx, "/auth/verifytoken", struct{}{}, backend.Options{})
}

// Profile extracts the user profile from a successful envelope.
func (s *Service) Profile(env backend.Envelope) *domain.UserProfile {
	if !env.Success {
		return nil
	}
	return domain.ProfileFromPayload(env.Data)
}

func tokenFromPayload(data any) string {
	m, ok := data.(map[string]any)
	if !ok {
		return ""
	}
	tok, _ := m["token"].(string)
	return tok
}
