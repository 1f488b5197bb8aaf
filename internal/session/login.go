package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"openpims-golang/gateway/internal/config"
	jsonpkg "openpims-golang/gateway/internal/pkg/json"
)

// Login failure taxonomy. Callers match with errors.Is; the wrapped message
// is what the panel shows the user.
var (
	ErrAuthentication     = errors.New("authentication failed")
	ErrServiceUnavailable = errors.New("login service unavailable")
	ErrProtocol           = errors.New("malformed login response")
)

type loginResponse struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
	Domain string `json:"domain"`
}

func newLoginClient() *http.Client {
	cfg := config.Get()

	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if cfg.TimeoutMs <= 0 {
		timeout = 0
	}

	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Timeout: timeout,
	}
}

// fetchCredential performs the login exchange: a single GET to serverURL
// with HTTP Basic credentials. Email and password are UTF-8 encoded before
// base64, matching what the server expects.
func (c *Controller) fetchCredential(ctx context.Context, email, password, serverURL string) (*Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid server URL", ErrServiceUnavailable)
	}
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(email+":"+password)))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", config.Get().UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	var lr loginResponse
	if err := jsonpkg.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("%w: expected JSON with userId, token and domain", ErrProtocol)
	}
	if lr.UserID == "" || lr.Token == "" || lr.Domain == "" {
		return nil, fmt.Errorf("%w: no valid user ID, token or domain received", ErrProtocol)
	}

	return &Record{
		UserID:     lr.UserID,
		Secret:     lr.Token,
		AppDomain:  lr.Domain,
		Email:      email,
		ServerURL:  serverURL,
		IsLoggedIn: true,
		CreatedAt:  time.Now(),
	}, nil
}

func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: invalid email or password", ErrAuthentication)
	case code == http.StatusForbidden:
		return fmt.Errorf("%w: access denied", ErrAuthentication)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: login service not reachable", ErrServiceUnavailable)
	case code >= 500:
		return fmt.Errorf("%w: server error, please try again later", ErrServiceUnavailable)
	default:
		return fmt.Errorf("%w: login failed (status %d)", ErrServiceUnavailable, code)
	}
}
