package http

import (
	"net/http"

	jsonpkg "openpims-golang/gateway/internal/pkg/json"
)

// WriteJSON writes v as the response body with the given status code.
// Encoding goes through the project-wide JSON wrapper (sonic).
func WriteJSON(w http.ResponseWriter, status int, v any) {
	b, err := jsonpkg.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

// WriteError writes the control API error envelope.
func WriteError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoded, _ := jsonpkg.MarshalString(msg)
	_, _ = w.Write([]byte(`{"error":{"message":` + encoded + `}}`))
}
