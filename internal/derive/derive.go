// Package derive computes the deterministic, daily-rotating subdomain that
// identifies a logged-in user towards a single visited domain.
package derive

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

const (
	secondsPerDay = 86400

	// 32 hex chars (128 MAC bits) keep "<sub>.<domain>" inside the 63-byte
	// DNS label limit.
	subdomainLen = 32
)

// Subdomain returns the identifier for (userID, domain) at the given Unix
// time: the first 32 lowercase hex characters of
// HMAC-SHA256(secret, userID+domain+day), where day counts whole UTC days
// since the epoch. The value is stable within a day and rotates at the UTC
// day boundary. Callers must not invoke it with an empty userID or secret.
func Subdomain(userID, secret, domain string, nowUnix int64) string {
	day := nowUnix / secondsPerDay
	message := userID + domain + strconv.FormatInt(day, 10)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))

	return hex.EncodeToString(mac.Sum(nil))[:subdomainLen]
}
