package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/comanda-pos/terminal/internal/api"
	"github.com/comanda-pos/terminal/internal/session"
)

// SessionHandler exposes login/logout for the terminal UI.
type SessionHandler struct {
	sess *session.Store
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sess *session.Store) *SessionHandler {
	return &SessionHandler{sess: sess}
}

// RegisterRoutes registers session endpoints on the given Chi router.
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Current)
	r.Post("/login", h.Login)
	r.Post("/register", h.Register)
	r.Post("/logout", h.Logout)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	LoggedIn bool      `json:"logged_in"`
	Expired  bool      `json:"expired"`
	User     *api.User `json:"user"`
}

// Current handles GET /session.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{
		LoggedIn: h.sess.LoggedIn(),
		Expired:  h.sess.LoggedIn() && h.sess.Expired(),
		User:     h.sess.User(),
	})
}

// Login handles POST /session/login.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.sess.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{LoggedIn: true, User: user})
}

// Register handles POST /session/register.
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Nombre == "" {
		writeError(w, http.StatusBadRequest, "nombre, email and password are required")
		return
	}

	user, err := h.sess.Register(r.Context(), req)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{LoggedIn: true, User: user})
}

// Logout handles POST /session/logout.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sess.Logout(r.Context()); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			writeError(w, http.StatusBadRequest, "not logged in")
			return
		}
		// Token revocation failed upstream but the local session is gone;
		// the terminal is logged out either way.
	}
	writeJSON(w, http.StatusOK, sessionResponse{LoggedIn: false})
}

// writeUpstreamError maps back-office client errors onto the local API:
// the upstream status and message pass through, transport failures become
// a 502.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		writeError(w, apiErr.Status, apiErr.Message)
		return
	}
	writeError(w, http.StatusBadGateway, "back office unreachable")
}
