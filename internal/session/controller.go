// Package session owns the credential lifecycle: one login installs the
// active credential, one logout removes it, and the header rewrite engine
// reads whatever is currently installed.
package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"openpims-golang/gateway/internal/logger"
)

// Controller holds the single active credential. It is the only writer; the
// proxy path only reads. The credential is swapped as a whole pointer under
// the lock, so an in-flight derivation can never observe a half-written
// value.
type Controller struct {
	store  *Store
	client *http.Client

	mu       sync.RWMutex
	active   *Credential
	email    string
	server   string
	onChange []func(*Credential)
}

func NewController(store *Store) *Controller {
	return &Controller{store: store, client: newLoginClient()}
}

// Restore re-derives the lifecycle state from the persisted record at
// process start. Without a record (or with an incomplete one) the gateway
// starts logged out.
func (c *Controller) Restore() {
	rec, err := c.store.Load()
	if err != nil {
		logger.Warn("Could not read persisted session: %v", err)
		return
	}
	if rec == nil || !rec.IsLoggedIn {
		return
	}
	if !rec.valid() {
		logger.Warn("Persisted session is incomplete, starting logged out")
		return
	}

	c.install(rec.credential(), rec.Email, rec.ServerURL)
	logger.Info("Restored session for %s", rec.Email)
}

// Login performs the credential exchange and, only on full success,
// installs the credential and activates header rewriting. Any failure
// leaves the prior state untouched.
func (c *Controller) Login(ctx context.Context, email, password, serverURL string) error {
	rec, err := c.fetchCredential(ctx, email, password, serverURL)
	if err != nil {
		return err
	}

	if err := c.store.Save(rec); err != nil {
		return fmt.Errorf("could not persist session: %w", err)
	}

	c.install(rec.credential(), rec.Email, rec.ServerURL)
	logger.Info("Logged in as %s", email)
	return nil
}

// Logout clears the active credential and removes the persisted record.
// It is idempotent. A store failure is reported but the in-memory
// transition always completes first.
func (c *Controller) Logout() error {
	c.mu.Lock()
	wasActive := c.active != nil
	c.active = nil
	c.email = ""
	c.server = ""
	subs := append(([]func(*Credential))(nil), c.onChange...)
	c.mu.Unlock()

	if wasActive {
		for _, fn := range subs {
			fn(nil)
		}
		logger.Info("Logged out")
	}

	if err := c.store.Clear(); err != nil {
		logger.Warn("Could not remove persisted session: %v", err)
		return err
	}
	return nil
}

// Active returns the current credential, or nil when logged out. The
// returned value is shared and must be treated as read-only.
func (c *Controller) Active() *Credential {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

func (c *Controller) LoggedIn() bool {
	return c.Active() != nil
}

// Status reports what the panel shows: login state plus the non-secret
// parts of the session.
func (c *Controller) Status() (loggedIn bool, email, serverURL string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active != nil, c.email, c.server
}

// OnChange registers fn to run after every lifecycle transition, with the
// newly active credential (nil on logout). Callbacks run on the
// transitioning goroutine.
func (c *Controller) OnChange(fn func(*Credential)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = append(c.onChange, fn)
}

func (c *Controller) install(cred *Credential, email, serverURL string) {
	c.mu.Lock()
	c.active = cred
	c.email = email
	c.server = serverURL
	subs := append(([]func(*Credential))(nil), c.onChange...)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(cred)
	}
}
