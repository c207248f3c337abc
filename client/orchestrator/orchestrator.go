package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/viant/clientcredentials/client/auth/discovery"
	"github.com/viant/clientcredentials/client/auth/token"
	"github.com/viant/clientcredentials/client/resource"
	"github.com/viant/clientcredentials/config"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=mock/mock_discovery.go -package=mock github.com/viant/clientcredentials/client/auth/discovery Fetcher
//go:generate mockgen -destination=mock/mock_token.go -package=mock github.com/viant/clientcredentials/client/auth/token Requester
//go:generate mockgen -destination=mock/mock_resource.go -package=mock github.com/viant/clientcredentials/client/resource Getter

// Orchestrator runs discovery, token request and the protected resource call in sequence
type Orchestrator struct {
	discovery discovery.Fetcher
	token     token.Requester
	resource  resource.Getter
	config    *config.Config
	logger    *zap.SugaredLogger
}

// Execute performs a single run. Reported discovery and token errors abort the
// run with a nil error; a resource transport fault, an undecodable success body
// or a done context are returned.
func (o *Orchestrator) Execute(ctx context.Context) (*Outcome, error) {
	outcome := &Outcome{RunID: uuid.New().String(), State: Start}
	logger := o.logger.With("run", outcome.RunID)

	discoveryResult := o.discovery.Fetch(ctx, o.config.Authority)
	outcome.Discovery = discoveryResult
	if err := o.checkContext(ctx, outcome, logger); err != nil {
		return outcome, err
	}
	if discoveryResult.IsError {
		logger.Error(discoveryResult.Error)
		return o.abort(outcome, logger), nil
	}
	o.transition(outcome, DiscoveryDone, logger)

	tokenResult := o.token.Request(ctx, &token.Request{
		TokenEndpoint: discoveryResult.TokenEndpoint,
		ClientID:      o.config.ClientID,
		ClientSecret:  o.config.ClientSecret,
		Scope:         o.config.Scope,
	})
	outcome.Token = tokenResult
	if err := o.checkContext(ctx, outcome, logger); err != nil {
		return outcome, err
	}
	if tokenResult.IsError {
		logger.Error(tokenResult.Error)
		return o.abort(outcome, logger), nil
	}
	o.transition(outcome, TokenDone, logger)
	logger.Info(tokenResult.Raw)
	logger.Info("\n\n")

	resourceResult, err := o.resource.Get(ctx, o.config.ResourceURL(), tokenResult.AccessToken)
	if err != nil {
		o.abort(outcome, logger)
		return outcome, fmt.Errorf("failed to call %v: %w", o.config.ResourceURL(), err)
	}
	outcome.Resource = resourceResult
	o.transition(outcome, ApiCallDone, logger)

	if !resourceResult.IsSuccess {
		logger.Info(resourceResult.StatusCode)
		o.transition(outcome, Finished, logger)
		return outcome, nil
	}
	var claims []interface{}
	if err = json.Unmarshal([]byte(resourceResult.Body), &claims); err != nil {
		o.abort(outcome, logger)
		return outcome, fmt.Errorf("failed to decode %v response as JSON array: %w", o.config.ResourceURL(), err)
	}
	outcome.Claims = claims
	pretty, err := json.MarshalIndent(claims, "", "  ")
	if err != nil {
		o.abort(outcome, logger)
		return outcome, fmt.Errorf("failed to format %v response: %w", o.config.ResourceURL(), err)
	}
	logger.Info(string(pretty))
	o.transition(outcome, Finished, logger)
	return outcome, nil
}

func (o *Orchestrator) checkContext(ctx context.Context, outcome *Outcome, logger *zap.SugaredLogger) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	step := outcome.State
	o.abort(outcome, logger)
	return fmt.Errorf("run %v aborted after %v: %w", outcome.RunID, step, err)
}

func (o *Orchestrator) transition(outcome *Outcome, state State, logger *zap.SugaredLogger) {
	logger.Debugw("state changed", "from", outcome.State.String(), "to", state.String())
	outcome.State = state
}

func (o *Orchestrator) abort(outcome *Outcome, logger *zap.SugaredLogger) *Outcome {
	o.transition(outcome, Aborted, logger)
	return outcome
}

// Config returns the run settings
func (o *Orchestrator) Config() *config.Config {
	return o.config
}

// New creates an orchestrator, a nil logger discards output
func New(fetcher discovery.Fetcher, requester token.Requester, getter resource.Getter, logger *zap.SugaredLogger, options ...Option) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	ret := &Orchestrator{
		discovery: fetcher,
		token:     requester,
		resource:  getter,
		config:    config.Default(),
		logger:    logger,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
