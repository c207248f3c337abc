package authority

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the authority
type Option func(s *Service)

// WithIssuer sets the issuer, endpoints are published relative to it
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		s.Issuer = issuer
	}
}

// WithClient registers a client with its secret and allowed scopes
func WithClient(id, secret string, scopes ...string) Option {
	return func(s *Service) {
		s.clients[id] = &Client{ID: id, Secret: secret, AllowedScopes: scopes}
	}
}

// WithAudience sets the access token audience
func WithAudience(audience string) Option {
	return func(s *Service) {
		s.Audience = audience
	}
}

// WithTokenLifetime sets access token lifetime
func WithTokenLifetime(lifetime time.Duration) Option {
	return func(s *Service) {
		s.TokenLifetime = lifetime
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
