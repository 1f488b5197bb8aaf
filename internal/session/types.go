package session

import "time"

// Credential is the in-memory tuple that enables header derivation while a
// session is active. It is installed and removed as a whole; readers never
// see a partially populated value.
type Credential struct {
	UserID    string
	Secret    string
	AppDomain string
}

// Record is the persisted session file. Only UserID, Secret, AppDomain and
// IsLoggedIn matter for restoring a session; Email and ServerURL are kept so
// the panel can show where the user is logged in.
type Record struct {
	UserID     string    `json:"userId"`
	Secret     string    `json:"secret"`
	AppDomain  string    `json:"appDomain"`
	Email      string    `json:"email,omitempty"`
	ServerURL  string    `json:"serverUrl,omitempty"`
	IsLoggedIn bool      `json:"isLoggedIn"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

func (r *Record) credential() *Credential {
	return &Credential{UserID: r.UserID, Secret: r.Secret, AppDomain: r.AppDomain}
}

func (r *Record) valid() bool {
	return r.UserID != "" && r.Secret != "" && r.AppDomain != ""
}
