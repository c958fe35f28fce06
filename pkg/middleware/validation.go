package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorResponse is the standard error body shape.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidateRequest rejects obviously broken requests before they reach a
// handler: wrong Content-Type, empty bodies on POST/PUT, oversized bodies.
func ValidateRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			contentType := r.Header.Get("Content-Type")
			if contentType != "" && !strings.Contains(contentType, "application/json") {
				writeError(w, http.StatusBadRequest, "Invalid Content-Type, expected application/json")
				return
			}

			if r.ContentLength == 0 {
				writeError(w, http.StatusBadRequest, "Request body cannot be empty")
				return
			}
		}

		// Cap request bodies at 1MB; rule payloads are tiny.
		const maxSize = 1 << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxSize)

		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}
