package api

import (
	"net/http"
	"strconv"
)

// preflightMaxAge is how long browsers may cache a preflight answer
const preflightMaxAge = 600

// OriginPolicy lets browser pages from the listed origins call the API, "*" allows any origin.
// Requests without an Origin header are not browser cross-origin calls and pass through.
type OriginPolicy struct {
	origins  map[string]bool
	wildcard bool
}

func (p *OriginPolicy) allows(origin string) bool {
	return p.wildcard || p.origins[origin]
}

// Middleware rejects foreign origins, answers preflight requests and exposes the
// bearer challenge header to permitted origins.
func (p *OriginPolicy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !p.allows(origin) {
			http.Error(w, "origin not allowed", http.StatusForbidden)
			return
		}
		header := w.Header()
		header.Set("Access-Control-Allow-Origin", origin)
		header.Add("Vary", "Origin")
		header.Set("Access-Control-Expose-Headers", "WWW-Authenticate")
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			header.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			header.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			header.Set("Access-Control-Max-Age", strconv.Itoa(preflightMaxAge))
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NewOriginPolicy creates a policy for origins
func NewOriginPolicy(origins ...string) *OriginPolicy {
	ret := &OriginPolicy{origins: make(map[string]bool, len(origins))}
	for _, origin := range origins {
		if origin == "*" {
			ret.wildcard = true
		}
		ret.origins[origin] = true
	}
	return ret
}
