package clientcredentials

import (
	"fmt"
	"net/http"

	"github.com/viant/clientcredentials/client/auth/discovery"
	"github.com/viant/clientcredentials/client/auth/token"
	"github.com/viant/clientcredentials/client/orchestrator"
	"github.com/viant/clientcredentials/client/resource"
	"github.com/viant/clientcredentials/config"
	"github.com/viant/clientcredentials/internal/httpclient"
	"go.uber.org/zap"
)

// NewClient creates an orchestrator for cfg, the authority and the API each get their own http client
func NewClient(cfg *config.Config, logger *zap.SugaredLogger, options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	authorityClient, err := NewHTTPClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create authority client: %w", err)
	}
	apiClient, err := NewHTTPClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}
	options = append([]orchestrator.Option{orchestrator.WithConfig(cfg)}, options...)
	return orchestrator.New(
		discovery.New(authorityClient),
		token.New(authorityClient),
		resource.New(apiClient),
		logger,
		options...,
	), nil
}

// NewHTTPClient creates a peer client honouring cfg timeout and TLS settings
func NewHTTPClient(cfg *config.Config) (*http.Client, error) {
	return httpclient.NewBuilder().
		WithTimeout(cfg.Timeout).
		WithCABundle(cfg.CABundle).
		WithInsecureSkipVerify(cfg.InsecureSkipVerify).
		Build()
}
