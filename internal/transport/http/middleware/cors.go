package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows any origin, method and header. Credentials are not allowed,
// which the wildcard origin requires anyway; auth travels in the
// Authorization header.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{HeaderXRequestID, HeaderTokenExpired, "Location"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
