package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
)

// RequestID returns a middleware that tags every response with a random
// 16-hex-character X-Request-Id header for log correlation.
func RequestID() Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id := make([]byte, 8)
			if _, err := rand.Read(id); err != nil {
				log.Printf("[RequestID] crypto/rand failed: %v", err)
			}
			w.Header().Set("X-Request-Id", hex.EncodeToString(id))
			next(w, r)
		}
	}
}
