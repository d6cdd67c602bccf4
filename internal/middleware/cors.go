package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORS builds the CORS handler for the API. An empty origin list denies every
// cross-origin request; rs/cors would otherwise read it as "allow all".
func NewCORS(origins []string) *cors.Cors {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}
	if len(origins) == 0 {
		opts.AllowOriginFunc = func(string) bool { return false }
	}
	return cors.New(opts)
}
