// Package middleware provides reusable HTTP middleware for the hotel reservations API.
package middleware

import (
	"net/http"
	"time"

	"github.com/rs/cors"
)

// corsMaxAge is how long browsers may cache a preflight answer.
const corsMaxAge = 10 * time.Minute

// NewCORSHandler returns a middleware that applies CORS headers for the
// origins in CORS_ORIGINS. Each entry must be a full origin (scheme + host,
// no trailing slash). Methods cover the reservation routes; X-Request-Id is
// accepted from and exposed to browsers so client and server logs can be
// correlated.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         int(corsMaxAge.Seconds()),
	})
	return c.Handler
}
