package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON serializes v with the given status code. Encoding failures
// are ignored; the status line has already gone out by then.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the {"error": ...} body every failure response uses.
func Error(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// Message writes the {"message": ...} confirmation body used by deletes.
func Message(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}
