package response

import (
	"encoding/json"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Phase string `json:"phase,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorBody{Error: message})
}

// WritePhaseError writes an error that occurred during a named invocation phase.
func WritePhaseError(w http.ResponseWriter, status int, phase, message string) {
	WriteJSON(w, status, ErrorBody{Error: message, Phase: phase})
}
