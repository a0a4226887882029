package httpapi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// requireToken guards the portal and API routes with the static bearer token
// from config. An empty configured token disables the guard, which is only
// sensible for local development.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Token == "" {
			next.ServeHTTP(w, r)
			return
		}
		token := bearerToken(r)
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.Token)) != 1 {
			writeError(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	// Browser navigation cannot set headers; accept a query token too.
	return r.URL.Query().Get("token")
}
