// Package api implements a bearer protected resource used to demonstrate
// client credentials tokens.
//
// GET /identity returns the claims of the caller access token as a JSON array
// of {"type","value"} pairs. Requests without a valid token receive 401 with a
// WWW-Authenticate challenge pointing at /.well-known/oauth-protected-resource.
package api
