package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"homebase/app/config"
)

const bearerPrefix = "Bearer "

// RequireBearer allows a request only when the Authorization header carries
// the configured API key. Write routes always sit behind this gate.
func RequireBearer(params config.Params) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !bearerMatch(r, params) {
				deny(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SameOriginOrBearer trusts requests whose declared origin matches the
// serving host (or that declare no origin at all, e.g. same-site
// navigation) and falls back to the bearer check for everything else.
// Denials use 403 rather than 401: the caller could have presented
// credentials and did not match an allowed origin.
func SameOriginOrBearer(params config.Params) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				origin = r.Header.Get("Referer")
			}
			if origin == "" || strings.Contains(origin, r.Host) {
				next.ServeHTTP(w, r)
				return
			}
			if !bearerMatch(r, params) {
				deny(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerMatch checks the Authorization header against the API key, which is
// read through params on every call so rotation needs no restart. An unset
// key fails closed.
func bearerMatch(r *http.Request, params config.Params) bool {
	key := params.Get("API_KEY")
	if key == "" {
		return false
	}
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return false
	}
	token := strings.TrimPrefix(header, bearerPrefix)
	return subtle.ConstantTimeCompare([]byte(token), []byte(key)) == 1
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
