package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dispatch-dashboard/internal/api/dto"
	"github.com/spec-kit/dispatch-dashboard/internal/auth"
	"github.com/spec-kit/dispatch-dashboard/internal/session"
	apperrors "github.com/spec-kit/dispatch-dashboard/pkg/util"
)

// AuthHandler exposes the auth operations to the dashboard UI.
type AuthHandler struct {
	auth  *auth.Service
	store *session.Store
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *auth.Service, store *session.Store) *AuthHandler {
	return &AuthHandler{auth: authService, store: store}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	h.store.BeginResolving()
	env := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if !env.Success {
		h.store.Reset()
		return apperrors.NewUnauthorized(env.Message())
	}

	user := h.auth.Profile(env)
	token, _ := h.auth.Token()
	h.store.LoginSuccess(user, token)

	return c.JSON(fiber.Map{"data": fiber.Map{"user": user}})
}

// Signup handles POST /signup. The backend envelope is passed through; a
// successful signup does not log the account in.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email, password required", nil)
	}

	env := h.auth.Signup(c.UserContext(), auth.SignupParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if !env.Success {
		return apperrors.NewUpstreamError(env.Message())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": env.Data})
}

// Logout handles POST /logout. Always succeeds locally.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.auth.Logout(c.UserContext())
	h.store.Reset()
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Session handles GET /session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	state := h.store.Snapshot()
	resp := dto.SessionResponse{
		IsAuthenticated: state.IsAuthenticated,
		Loading:         state.Loading,
		HasToken:        state.Token != "",
		User:            state.User,
	}
	if exp := auth.SessionExpiry(state.Token); !exp.IsZero() {
		resp.ExpiresAt = exp.Format(time.RFC3339)
	}
	return c.JSON(fiber.Map{"data": resp})
}
