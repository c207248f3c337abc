package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	aurl "github.com/viant/afs/url"
)

// WellKnownPath is the OpenID Connect discovery document location relative to the authority
const WellKnownPath = ".well-known/openid-configuration"

// Fetcher loads the authority metadata
type Fetcher interface {
	Fetch(ctx context.Context, baseURL string) *Result
}

// Client fetches discovery documents over a dedicated authority http client
type Client struct {
	httpClient *http.Client
	issuer     string
}

// Fetch returns the discovery result for baseURL; transport and protocol
// failures are reported through the result, never returned.
func (c *Client) Fetch(ctx context.Context, baseURL string) *Result {
	baseURL = strings.TrimRight(baseURL, "/")
	location := URL(baseURL)
	ctx = oidc.ClientContext(ctx, c.httpClient)
	if c.issuer != "" {
		ctx = oidc.InsecureIssuerURLContext(ctx, c.issuer)
	}
	provider, err := oidc.NewProvider(ctx, baseURL)
	if err != nil {
		if isConnectionError(err) {
			return newConnectionError(location, err)
		}
		return newProtocolError(baseURL, err)
	}
	metadata := &Metadata{}
	if err = provider.Claims(metadata); err != nil {
		return newProtocolError(baseURL, err)
	}
	if metadata.TokenEndpoint == "" {
		return newProtocolError(baseURL, errors.New("token_endpoint was empty"))
	}
	return newResult(metadata)
}

// URL returns the discovery document URL for the authority
func URL(baseURL string) string {
	return aurl.Join(strings.TrimRight(baseURL, "/"), WellKnownPath)
}

func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func newConnectionError(location string, err error) *Result {
	return &Result{
		IsError:   true,
		ErrorType: ErrorTypeConnection,
		Error:     fmt.Sprintf("%s %s: %v", ConnectionErrorPrefix, location, err),
		cause:     errors.Join(ErrConnection, err),
	}
}

func newProtocolError(baseURL string, err error) *Result {
	return &Result{
		IsError:   true,
		ErrorType: ErrorTypeProtocol,
		Error:     fmt.Sprintf("%s %s: %v", ProtocolErrorPrefix, baseURL, err),
		cause:     err,
	}
}

func newResult(metadata *Metadata) *Result {
	return &Result{
		TokenEndpoint: metadata.TokenEndpoint,
		Issuer:        metadata.Issuer,
		JWKSURI:       metadata.JWKSURI,
		Metadata:      metadata,
	}
}

// New creates a discovery client, a nil httpClient uses http.DefaultClient
func New(httpClient *http.Client, options ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	ret := &Client{httpClient: httpClient}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
