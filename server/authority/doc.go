// Package authority provides a minimal OAuth2 authorization server that issues
// client credentials access tokens. It stands in for a production identity
// provider in integration tests and in the local demo.
//
// The authority publishes an OpenID Connect discovery document, its JWKS and a
// token endpoint. Token endpoint failures are reported as RFC 6749 JSON errors
// with HTTP 400.
package authority
