package panel

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	jsonpkg "openpims-golang/gateway/internal/pkg/json"
	"openpims-golang/gateway/internal/session"
)

func newHandler(t *testing.T) (*Handler, *session.Controller) {
	t.Helper()
	ctrl := session.NewController(session.NewStore(t.TempDir()))
	return New(ctrl), ctrl
}

func fakeLoginServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"userId":"u1","token":"s3cr3t","domain":"pims.example"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHandleIndex_ShowsLoginFormWhenLoggedOut(t *testing.T) {
	h, _ := newHandler(t)

	rec := httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `action="/login"`) {
		t.Fatalf("login form missing from logged-out index:\n%s", body)
	}
	if strings.Contains(body, "Logged in as") {
		t.Fatalf("logged-in view rendered without a session")
	}
}

func TestHandleLogin_FormFlow(t *testing.T) {
	srv := fakeLoginServer(t)
	h, ctrl := newHandler(t)

	form := url.Values{
		"email":     {"user@example.com"},
		"password":  {"pw"},
		"serverUrl": {srv.URL},
	}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.HandleLogin(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect after login, got %d: %s", rec.Code, rec.Body.String())
	}
	if !ctrl.LoggedIn() {
		t.Fatalf("controller not logged in after form login")
	}

	// Index now shows the account, never the secret.
	rec = httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	body := rec.Body.String()
	if !strings.Contains(body, "user@example.com") {
		t.Fatalf("logged-in view missing account:\n%s", body)
	}
	if strings.Contains(body, "s3cr3t") {
		t.Fatalf("secret rendered in panel output")
	}
}

func TestHandleLogin_BadCredentialsRendersError(t *testing.T) {
	srv := fakeLoginServer(t)
	h, ctrl := newHandler(t)

	form := url.Values{
		"email":     {"user@example.com"},
		"password":  {""},
		"serverUrl": {srv.URL},
	}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.HandleLogin(rec, req)

	if ctrl.LoggedIn() {
		t.Fatalf("logged in with empty password")
	}
	if !strings.Contains(rec.Body.String(), "Please fill in all fields.") {
		t.Fatalf("validation message missing:\n%s", rec.Body.String())
	}
}

func TestHandleAPILoginAndStatus(t *testing.T) {
	srv := fakeLoginServer(t)
	h, _ := newHandler(t)

	body := `{"email":"user@example.com","password":"pw","serverUrl":` + quote(srv.URL) + `}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleAPILogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("api login failed: %d %s", rec.Code, rec.Body.String())
	}

	var status struct {
		LoggedIn  bool   `json:"loggedIn"`
		Email     string `json:"email"`
		ServerURL string `json:"serverUrl"`
	}
	if err := jsonpkg.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !status.LoggedIn || status.Email != "user@example.com" || status.ServerURL != srv.URL {
		t.Fatalf("unexpected status payload: %+v", status)
	}
}

func TestHandleAPILogout(t *testing.T) {
	srv := fakeLoginServer(t)
	h, ctrl := newHandler(t)

	body := `{"email":"user@example.com","password":"pw","serverUrl":` + quote(srv.URL) + `}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	h.HandleAPILogin(httptest.NewRecorder(), req)
	if !ctrl.LoggedIn() {
		t.Fatalf("setup login failed")
	}

	rec := httptest.NewRecorder()
	h.HandleAPILogout(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("api logout failed: %d %s", rec.Code, rec.Body.String())
	}
	if ctrl.LoggedIn() {
		t.Fatalf("still logged in after api logout")
	}
}

func TestHandleAPILogin_RejectsInvalidBody(t *testing.T) {
	h, _ := newHandler(t)

	rec := httptest.NewRecorder()
	h.HandleAPILogin(rec, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid body, got %d", rec.Code)
	}
	if _, err := io.ReadAll(rec.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
}

func quote(s string) string {
	q, _ := jsonpkg.MarshalString(s)
	return q
}
