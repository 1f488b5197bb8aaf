// Package panel serves the local login/logout UI and the JSON control API.
package panel

import (
	"errors"
	"io"
	"net/http"

	"openpims-golang/gateway/internal/config"
	"openpims-golang/gateway/internal/panel/views"
	errpkg "openpims-golang/gateway/internal/pkg/errors"
	httppkg "openpims-golang/gateway/internal/pkg/http"
	jsonpkg "openpims-golang/gateway/internal/pkg/json"
	"openpims-golang/gateway/internal/session"
)

type Handler struct {
	ctrl *session.Controller
}

func New(ctrl *session.Controller) *Handler {
	return &Handler{ctrl: ctrl}
}

func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	loggedIn, email, serverURL := h.ctrl.Status()
	if loggedIn {
		_ = views.Status(email, serverURL).Render(r.Context(), w)
		return
	}
	_ = views.Login("", config.Get().ServerURL).Render(r.Context(), w)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_ = views.Login("Invalid request.", config.Get().ServerURL).Render(r.Context(), w)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	serverURL := r.FormValue("serverUrl")
	if serverURL == "" {
		serverURL = config.Get().ServerURL
	}
	if email == "" || password == "" {
		_ = views.Login("Please fill in all fields.", serverURL).Render(r.Context(), w)
		return
	}

	if err := h.ctrl.Login(r.Context(), email, password, serverURL); err != nil {
		_ = views.Login(err.Error(), serverURL).Render(r.Context(), w)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	_ = h.ctrl.Logout()
	http.Redirect(w, r, "/", http.StatusFound)
}

type statusResponse struct {
	LoggedIn  bool   `json:"loggedIn"`
	Email     string `json:"email,omitempty"`
	ServerURL string `json:"serverUrl,omitempty"`
}

func (h *Handler) HandleAPIStatus(w http.ResponseWriter, _ *http.Request) {
	loggedIn, email, serverURL := h.ctrl.Status()
	httppkg.WriteJSON(w, http.StatusOK, statusResponse{
		LoggedIn:  loggedIn,
		Email:     email,
		ServerURL: serverURL,
	})
}

type loginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	ServerURL string `json:"serverUrl,omitempty"`
}

func (h *Handler) HandleAPILogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		httppkg.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httppkg.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if req.ServerURL == "" {
		req.ServerURL = config.Get().ServerURL
	}

	if err := h.ctrl.Login(r.Context(), req.Email, req.Password, req.ServerURL); err != nil {
		he := loginError(err)
		httppkg.WriteError(w, he.StatusCode, he.Message)
		return
	}
	h.HandleAPIStatus(w, r)
}

// loginError maps the session error taxonomy onto control API responses.
func loginError(err error) *errpkg.HTTPError {
	switch {
	case errors.Is(err, session.ErrAuthentication):
		return errpkg.Unauthorized(err.Error())
	case errors.Is(err, session.ErrProtocol), errors.Is(err, session.ErrServiceUnavailable):
		return errpkg.BadGateway(err.Error())
	default:
		return errpkg.Internal(err.Error())
	}
}

func (h *Handler) HandleAPILogout(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Logout(); err != nil {
		// The in-memory transition already completed; report the store
		// failure but still answer with the logged-out state.
		httppkg.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.HandleAPIStatus(w, r)
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return err
	}
	return jsonpkg.Unmarshal(body, v)
}
