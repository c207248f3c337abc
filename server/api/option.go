package api

import "go.uber.org/zap"

// Option configures the API
type Option func(s *Service)

// WithAuthorizationServers sets authorities advertised in the protected resource metadata
func WithAuthorizationServers(URLs ...string) Option {
	return func(s *Service) {
		s.authorizationServers = URLs
	}
}

// WithScopes sets supported scopes
func WithScopes(scopes ...string) Option {
	return func(s *Service) {
		s.scopes = scopes
	}
}

// WithRealm sets the challenge realm, defaults to the first authorization server
func WithRealm(realm string) Option {
	return func(s *Service) {
		s.realm = realm
	}
}

// WithAllowedOrigins enables cross-origin browser access for origins, other origins are rejected
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Service) {
		s.origins = NewOriginPolicy(origins...)
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
