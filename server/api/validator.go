package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/viant/clientcredentials/client/auth/discovery"
)

var (
	// ErrMissingToken is returned when a request carries no bearer token
	ErrMissingToken = errors.New("bearer token required")
	// ErrInvalidToken is returned when token signature or claims do not verify
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingIssuerAndJWKSURL is returned when neither issuer nor JWKS URL is configured
	ErrMissingIssuerAndJWKSURL = errors.New("either issuer or JWKS URL is required")
)

// registrationTimeout bounds the first JWKS fetch
const registrationTimeout = 5 * time.Second

// TokenValidator validates bearer tokens
type TokenValidator interface {
	Validate(ctx context.Context, token string) (jwt.MapClaims, error)
}

// ValidatorConfig defines token validation settings
type ValidatorConfig struct {
	Issuer     string
	Audience   string
	JWKSURL    string
	HTTPClient *http.Client
}

// Validator verifies RS256 access tokens against the authority JWKS
type Validator struct {
	issuer     string
	audience   string
	httpClient *http.Client
	cache      *jwk.Cache
	mux        sync.Mutex
	jwksURL    string
	registered bool
}

// Issuer returns the expected token issuer
func (v *Validator) Issuer() string {
	return v.issuer
}

// Validate parses the token, verifies its signature and checks issuer, audience and expiry
func (v *Validator) Validate(ctx context.Context, token string) (jwt.MapClaims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		options = append(options, jwt.WithAudience(v.audience))
	}
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return v.key(ctx, token)
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (v *Validator) key(ctx context.Context, token *jwt.Token) (interface{}, error) {
	kid, ok := token.Header["kid"].(string)
	if !ok {
		return nil, errors.New("token header missing kid")
	}
	jwksURL, err := v.ensureRegistered(ctx)
	if err != nil {
		return nil, err
	}
	keySet, err := v.cache.Lookup(ctx, jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup JWKS: %w", err)
	}
	key, found := keySet.LookupKeyID(kid)
	if !found {
		if keySet, err = v.cache.Refresh(ctx, jwksURL); err != nil {
			return nil, fmt.Errorf("failed to refresh JWKS: %w", err)
		}
		if key, found = keySet.LookupKeyID(kid); !found {
			return nil, fmt.Errorf("key ID %s not found in JWKS", kid)
		}
	}
	var rawKey interface{}
	if err = jwk.Export(key, &rawKey); err != nil {
		return nil, fmt.Errorf("failed to export raw key: %w", err)
	}
	return rawKey, nil
}

// ensureRegistered discovers the JWKS URL when needed and registers it with the cache.
// Failures are not remembered, the next request tries again.
func (v *Validator) ensureRegistered(ctx context.Context) (string, error) {
	v.mux.Lock()
	defer v.mux.Unlock()
	if v.registered {
		return v.jwksURL, nil
	}
	if v.jwksURL == "" {
		result := discovery.New(v.httpClient).Fetch(ctx, v.issuer)
		if result.IsError {
			return "", fmt.Errorf("failed to discover JWKS URL: %v", result.Error)
		}
		if result.JWKSURI == "" {
			return "", fmt.Errorf("discovery document of %v missing jwks_uri", v.issuer)
		}
		v.jwksURL = result.JWKSURI
	}
	registrationCtx, cancel := context.WithTimeout(ctx, registrationTimeout)
	defer cancel()
	if err := v.cache.Register(registrationCtx, v.jwksURL); err != nil {
		_ = v.cache.Unregister(ctx, v.jwksURL)
		return "", fmt.Errorf("failed to register JWKS URL %v: %w", v.jwksURL, err)
	}
	v.registered = true
	return v.jwksURL, nil
}

// NewValidator creates a validator, the JWKS is fetched on first use.
// ctx bounds the lifetime of the JWKS cache.
func NewValidator(ctx context.Context, config ValidatorConfig) (*Validator, error) {
	if config.Issuer == "" && config.JWKSURL == "" {
		return nil, ErrMissingIssuerAndJWKSURL
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	cache, err := jwk.NewCache(ctx, httprc.NewClient(httprc.WithHTTPClient(httpClient)))
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS cache: %w", err)
	}
	return &Validator{
		issuer:     config.Issuer,
		audience:   config.Audience,
		jwksURL:    config.JWKSURL,
		httpClient: httpClient,
		cache:      cache,
	}, nil
}
