package api

import (
	"net/http"

	"go.uber.org/zap"
)

const (
	IdentityURI          = "/identity"
	ProtectedResourceURI = "/.well-known/oauth-protected-resource"

	DefaultAddr  = ":6001"
	DefaultScope = "api1"
)

// Service is a bearer protected API echoing the claims of the caller token
type Service struct {
	validator            TokenValidator
	authorizationServers []string
	scopes               []string
	realm                string
	origins              *OriginPolicy
	logger               *zap.SugaredLogger
}

// Register registers API handlers onto the given ServeMux
func (s *Service) Register(mux *http.ServeMux) {
	var middlewareHandlers []Middleware
	if s.origins != nil {
		middlewareHandlers = append(middlewareHandlers, s.origins.Middleware)
	}
	mux.Handle(ProtectedResourceURI, ChainMiddlewareHandlers(http.HandlerFunc(s.protectedResourceHandler), middlewareHandlers...))
	middlewareHandlers = append(middlewareHandlers, s.authenticate)
	mux.Handle(IdentityURI, ChainMiddlewareHandlers(http.HandlerFunc(s.identityHandler), middlewareHandlers...))
}

// Handler returns an http.Handler for all API endpoints
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

// HTTP returns a server for addr, defaults to DefaultAddr
func (s *Service) HTTP(addr string) *http.Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &http.Server{Addr: addr, Handler: s.Handler()}
}

// New creates an API protected by validator
func New(validator TokenValidator, options ...Option) *Service {
	ret := &Service{
		validator: validator,
		scopes:    []string{DefaultScope},
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.realm == "" && len(ret.authorizationServers) > 0 {
		ret.realm = ret.authorizationServers[0]
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop().Sugar()
	}
	return ret
}
