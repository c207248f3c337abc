// Package testkit runs an authority and a protected API in process for integration tests.
package testkit

import (
	"context"
	"testing"

	"github.com/viant/clientcredentials/config"
	"github.com/viant/clientcredentials/server/api"
	"github.com/viant/clientcredentials/server/authority"
)

// Environment represents a running authority and API pair
type Environment struct {
	Authority        *Server
	AuthorityService *authority.Service
	API              *Server
	APIService       *api.Service
	Validator        *api.Validator
}

// Config returns client settings pointing at the environment
func (e *Environment) Config() *config.Config {
	ret := config.Default()
	ret.Authority = e.Authority.URL
	ret.ResourceBase = e.API.URL
	return ret
}

// Close stops both servers
func (e *Environment) Close() {
	_ = e.API.Stop()
	_ = e.Authority.Stop()
}

// Start launches the environment, it is stopped on test cleanup
func Start(t testing.TB, options ...authority.Option) *Environment {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	authorityListener, authorityURL, err := reserve()
	if err != nil {
		t.Fatalf("failed to reserve authority port: %v", err)
	}
	options = append(options, authority.WithIssuer(authorityURL))
	authorityService, err := authority.New(options...)
	if err != nil {
		_ = authorityListener.Close()
		t.Fatalf("failed to create authority: %v", err)
	}
	ret := &Environment{AuthorityService: authorityService}
	ret.Authority = newServer(authorityListener, authorityURL, authorityService.Handler())

	ret.Validator, err = api.NewValidator(ctx, api.ValidatorConfig{Issuer: authorityURL, Audience: authorityService.Audience})
	if err != nil {
		_ = ret.Authority.Stop()
		t.Fatalf("failed to create validator: %v", err)
	}
	apiListener, apiURL, err := reserve()
	if err != nil {
		_ = ret.Authority.Stop()
		t.Fatalf("failed to reserve api port: %v", err)
	}
	ret.APIService = api.New(ret.Validator, api.WithAuthorizationServers(authorityURL), api.WithScopes(authorityService.Scopes()...))
	ret.API = newServer(apiListener, apiURL, ret.APIService.Handler())
	t.Cleanup(ret.Close)
	return ret
}
