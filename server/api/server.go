package api

import (
	"context"
	"net/http/httptest"
)

// HTTPTestServer runs an API on an httptest server validating tokens of issuer
type HTTPTestServer struct {
	*Service
	Validator *Validator
	Server    *httptest.Server
	URL       string
}

// NewHTTPTestServer starts an API trusting issuer for audience
func NewHTTPTestServer(ctx context.Context, issuer, audience string, options ...Option) (*HTTPTestServer, error) {
	validator, err := NewValidator(ctx, ValidatorConfig{Issuer: issuer, Audience: audience})
	if err != nil {
		return nil, err
	}
	options = append([]Option{WithAuthorizationServers(issuer)}, options...)
	service := New(validator, options...)
	ret := &HTTPTestServer{Service: service, Validator: validator}
	ret.Server = httptest.NewServer(service.Handler())
	ret.URL = ret.Server.URL
	return ret, nil
}

// Close stops the test server
func (s *HTTPTestServer) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
	s.Server = nil
}
