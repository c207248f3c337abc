package discovery

import "errors"

const (
	// ConnectionErrorPrefix starts the message of a result whose authority could not be reached
	ConnectionErrorPrefix = "Error connecting to"
	// ProtocolErrorPrefix starts the message of a result whose document could not be loaded
	ProtocolErrorPrefix = "Error loading discovery document from"
)

// ErrConnection marks an unreachable authority
var ErrConnection = errors.New("authority unreachable")

// ErrorType classifies a failed discovery
type ErrorType string

const (
	// ErrorTypeNone marks a successful discovery
	ErrorTypeNone ErrorType = ""
	// ErrorTypeConnection marks an authority that could not be reached
	ErrorTypeConnection ErrorType = "connection"
	// ErrorTypeProtocol marks a discovery document that was missing, invalid or inconsistent
	ErrorTypeProtocol ErrorType = "protocol"
)

// Metadata represents the subset of the discovery document used by the client
type Metadata struct {
	Issuer                            string   `json:"issuer"`
	TokenEndpoint                     string   `json:"token_endpoint"`
	JWKSURI                           string   `json:"jwks_uri"`
	AuthorizationEndpoint             string   `json:"authorization_endpoint,omitempty"`
	ScopesSupported                   []string `json:"scopes_supported,omitempty"`
	GrantTypesSupported               []string `json:"grant_types_supported,omitempty"`
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported,omitempty"`
}

// Result represents a discovery outcome; either the error or the endpoint fields are set
type Result struct {
	IsError       bool
	Error         string
	ErrorType     ErrorType
	TokenEndpoint string
	Issuer        string
	JWKSURI       string
	Metadata      *Metadata
	cause         error
}

// Err returns the underlying failure or nil
func (r *Result) Err() error {
	return r.cause
}

// Option configures the discovery client
type Option func(c *Client)

// WithIssuer sets the issuer expected in the document when it differs from the
// discovery base URL (authority behind a proxy).
func WithIssuer(issuer string) Option {
	return func(c *Client) {
		c.issuer = issuer
	}
}
