package id

import (
	"strings"

	"github.com/google/uuid"
)

// RequestID tags one proxied request for log correlation.
func RequestID() string {
	id := uuid.New().String()
	return "req-" + strings.ReplaceAll(id, "-", "")[:12]
}
