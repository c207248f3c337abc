package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/viant/clientcredentials"
	"github.com/viant/clientcredentials/config"
	"github.com/viant/clientcredentials/server/api"
	"github.com/viant/clientcredentials/server/authority"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// RunAuthority serves the demo authorization server until ctx is done
func RunAuthority(ctx context.Context, options *AuthorityOptions, logger *zap.SugaredLogger) error {
	issuer := options.Issuer
	if issuer == "" {
		issuer = listenURL(options.Addr, options.Cert != "")
	}
	service, err := authority.New(
		authority.WithIssuer(issuer),
		authority.WithClient(options.ClientID, options.ClientSecret, options.Scopes...),
		authority.WithAudience(options.Audience),
		authority.WithTokenLifetime(options.Lifetime),
		authority.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	if schemeMismatch(issuer, config.DefaultAuthority) {
		logger.Warnw("issuer scheme differs from the default client and api authority, pass --authority or set --cert/--key",
			"issuer", issuer, "defaultAuthority", config.DefaultAuthority)
	}
	logger.Infow("starting authority", "addr", options.Addr, "issuer", issuer)
	return serve(ctx, service.HTTP(options.Addr), options.Cert, options.Key)
}

// RunAPI serves the demo protected API until ctx is done
func RunAPI(ctx context.Context, options *APIOptions, logger *zap.SugaredLogger) error {
	cfg := config.Default()
	cfg.InsecureSkipVerify = options.InsecureSkipVerify
	cfg.CABundle = options.CABundle
	httpClient, err := clientcredentials.NewHTTPClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create authority client: %w", err)
	}
	validator, err := api.NewValidator(ctx, api.ValidatorConfig{
		Issuer:     options.Authority,
		Audience:   options.Audience,
		JWKSURL:    options.JWKSURL,
		HTTPClient: httpClient,
	})
	if err != nil {
		return err
	}
	apiOptions := []api.Option{api.WithAuthorizationServers(options.Authority), api.WithScopes(options.Audience), api.WithLogger(logger)}
	if len(options.AllowOrigins) > 0 {
		apiOptions = append(apiOptions, api.WithAllowedOrigins(options.AllowOrigins...))
	}
	service := api.New(validator, apiOptions...)
	logger.Infow("starting api", "addr", options.Addr, "authority", options.Authority)
	return serve(ctx, service.HTTP(options.Addr), options.Cert, options.Key)
}

func serve(ctx context.Context, server *http.Server, cert, key string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	errs := make(chan error, 1)
	go func() {
		if cert != "" {
			errs <- server.ListenAndServeTLS(cert, key)
			return
		}
		errs <- server.ListenAndServe()
	}()
	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// schemeMismatch returns true when issuer and authority use different URL schemes
func schemeMismatch(issuer, authority string) bool {
	issuerURL, err := url.Parse(issuer)
	if err != nil {
		return false
	}
	authorityURL, err := url.Parse(authority)
	if err != nil {
		return false
	}
	return !strings.EqualFold(issuerURL.Scheme, authorityURL.Scheme)
}

// listenURL returns the URL clients use to reach addr
func listenURL(addr string, secure bool) string {
	scheme := "http"
	if secure {
		scheme = "https"
	}
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return scheme + "://" + addr
}
