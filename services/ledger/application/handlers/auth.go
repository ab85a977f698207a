package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/stockpilot/pkg/app"
	"github.com/ghuser/stockpilot/pkg/auth"
	"github.com/ghuser/stockpilot/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockpilot/pkg/validator"
)

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// LoginHandler handles POST /api/auth/login requests.
type LoginHandler struct {
	app *app.Application
}

// NewLoginHandler returns a LoginHandler backed by the application container.
func NewLoginHandler(a *app.Application) *LoginHandler {
	return &LoginHandler{app: a}
}

// Execute verifies the configured administrator credentials and starts a
// session. The user ID is derived deterministically from the email so the
// same administrator always maps to the same ID.
func (h *LoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}

	err := auth.VerifyCredentials(h.app.Config.AdminEmail, h.app.Config.AdminPasswordHash, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			httpx.JSONError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "login failed")
		return
	}

	userID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(req.Email))

	session, err := h.app.SessionStore.New(r, auth.SessionName)
	if err != nil {
		// A stale or undecodable cookie still yields a fresh session.
		h.app.Logger.WarnContext(r.Context(), "new session", "error", err)
	}
	session.Values[auth.SessionUserIDKey] = userID.String()
	if err := h.app.SessionStore.Save(r, w, session); err != nil {
		h.app.Logger.ErrorContext(r.Context(), "save session", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "login failed")
		return
	}

	httpx.JSON(w, http.StatusOK, LoginResponse{UserID: userID, Email: req.Email})
}

// LogoutHandler handles POST /api/auth/logout requests.
type LogoutHandler struct {
	app *app.Application
}

// NewLogoutHandler returns a LogoutHandler backed by the application container.
func NewLogoutHandler(a *app.Application) *LogoutHandler {
	return &LogoutHandler{app: a}
}

// Execute terminates the current session. Logging out without a session is
// not an error.
func (h *LogoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	session, err := h.app.SessionStore.Get(r, auth.SessionName)
	if err != nil {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
		return
	}

	session.Options.MaxAge = -1
	if err := h.app.SessionStore.Save(r, w, session); err != nil {
		h.app.Logger.ErrorContext(r.Context(), "destroy session", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
