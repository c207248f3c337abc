package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Middleware is a function that takes an http.Handler and returns an http.Handler
type Middleware func(next http.Handler) http.Handler

// ChainMiddlewareHandlers chains multiple middleware handlers together
func ChainMiddlewareHandlers(h http.Handler, mws ...Middleware) http.Handler {
	// apply in reverse so the first middleware is outermost
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

type claimsKey struct{}

// ClaimsFromContext returns claims of the validated bearer token
func ClaimsFromContext(ctx context.Context) (jwt.MapClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(jwt.MapClaims)
	return claims, ok
}

// authenticate enforces a valid bearer token, rejections carry a RFC 6750 challenge
func (s *Service) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := strings.TrimSpace(r.Header.Get("Authorization"))
		if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
			s.unauthorized(w, r, nil)
			return
		}
		claims, err := s.validator.Validate(r.Context(), strings.TrimSpace(auth[7:]))
		if err != nil {
			s.unauthorized(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

func (s *Service) unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	metaURL := baseURL(r) + ProtectedResourceURI
	var parts []string
	if s.realm != "" {
		parts = append(parts, fmt.Sprintf(`realm="%s"`, escapeQuotes(s.realm)))
	}
	parts = append(parts, fmt.Sprintf(`resource_metadata="%s"`, escapeQuotes(metaURL)))
	if err != nil {
		parts = append(parts, `error="invalid_token"`)
		s.logger.Debugw("token rejected", "path", r.URL.Path, "error", err)
	}
	w.Header().Set("WWW-Authenticate", "Bearer "+strings.Join(parts, ", "))
	w.WriteHeader(http.StatusUnauthorized)
}

func escapeQuotes(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
