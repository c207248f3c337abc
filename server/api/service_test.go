package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/clientcredentials/client/auth/token"
	"github.com/viant/clientcredentials/server/authority"
)

func issueToken(t *testing.T, server *authority.HTTPTestServer) string {
	t.Helper()
	result := token.New(nil).Request(context.Background(), &token.Request{
		TokenEndpoint: server.Issuer + authority.TokenURI,
		ClientID:      "client",
		ClientSecret:  "secret",
		Scope:         "api1",
	})
	require.False(t, result.IsError, result.Error)
	return result.AccessToken
}

func get(t *testing.T, URL, accessToken string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, URL, nil)
	require.NoError(t, err)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestService_Identity(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	authorityServer, err := authority.NewHTTPTestServer()
	require.NoError(t, err)
	defer authorityServer.Close()
	apiServer, err := NewHTTPTestServer(ctx, authorityServer.Issuer, "api1")
	require.NoError(t, err)
	defer apiServer.Close()

	resp, data := get(t, apiServer.URL+IdentityURI, issueToken(t, authorityServer))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var claims []*Claim
	require.NoError(t, json.Unmarshal(data, &claims))
	assert.Contains(t, claims, &Claim{Type: "client_id", Value: "client"})
	assert.Contains(t, claims, &Claim{Type: "scope", Value: "api1"})
	assert.Contains(t, claims, &Claim{Type: "iss", Value: authorityServer.Issuer})
	for i := 1; i < len(claims); i++ {
		assert.LessOrEqual(t, claims[i-1].Type, claims[i].Type)
	}
}

func TestService_Unauthorized(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	authorityServer, err := authority.NewHTTPTestServer()
	require.NoError(t, err)
	defer authorityServer.Close()
	foreign, err := authority.NewHTTPTestServer()
	require.NoError(t, err)
	defer foreign.Close()

	apiServer, err := NewHTTPTestServer(ctx, authorityServer.Issuer, "api1")
	require.NoError(t, err)
	defer apiServer.Close()

	authorityServer.Audience = "api2"
	otherAudience := issueToken(t, authorityServer)
	authorityServer.Audience = authority.DefaultAudience
	authorityServer.TokenLifetime = -time.Minute
	expired := issueToken(t, authorityServer)
	authorityServer.TokenLifetime = authority.DefaultTokenLifetime

	var testCases = []struct {
		description  string
		token        string
		invalidToken bool
	}{
		{description: "missing token"},
		{description: "malformed token", token: "token_is_bad", invalidToken: true},
		{description: "foreign authority", token: issueToken(t, foreign), invalidToken: true},
		{description: "other audience", token: otherAudience, invalidToken: true},
		{description: "expired token", token: expired, invalidToken: true},
	}
	for _, testCase := range testCases {
		resp, _ := get(t, apiServer.URL+IdentityURI, testCase.token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, testCase.description)
		challenge := resp.Header.Get("WWW-Authenticate")
		assert.Contains(t, challenge, `realm="`+authorityServer.Issuer+`"`, testCase.description)
		assert.Contains(t, challenge, `resource_metadata="`+apiServer.URL+ProtectedResourceURI+`"`, testCase.description)
		if testCase.invalidToken {
			assert.Contains(t, challenge, `error="invalid_token"`, testCase.description)
		} else {
			assert.NotContains(t, challenge, "error=", testCase.description)
		}
	}
}

func TestService_ProtectedResource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	apiServer, err := NewHTTPTestServer(ctx, "https://localhost:5001", "api1")
	require.NoError(t, err)
	defer apiServer.Close()

	resp, data := get(t, apiServer.URL+ProtectedResourceURI, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	metadata := &ProtectedResource{}
	require.NoError(t, json.Unmarshal(data, metadata))
	assert.Equal(t, apiServer.URL, metadata.Resource)
	assert.Equal(t, []string{"https://localhost:5001"}, metadata.AuthorizationServers)
	assert.Equal(t, []string{"api1"}, metadata.ScopesSupported)
	assert.Equal(t, []string{"header"}, metadata.BearerMethodsSupported)
}

func TestService_Cors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	apiServer, err := NewHTTPTestServer(ctx, "https://localhost:5001", "api1", WithAllowedOrigins("https://app.example.com"))
	require.NoError(t, err)
	defer apiServer.Close()

	var testCases = []struct {
		description  string
		method       string
		origin       string
		expectStatus int
		expectOrigin string
	}{
		{description: "preflight", method: http.MethodOptions, origin: "https://app.example.com", expectStatus: http.StatusNoContent, expectOrigin: "https://app.example.com"},
		{description: "allowed origin", method: http.MethodGet, origin: "https://app.example.com", expectStatus: http.StatusUnauthorized, expectOrigin: "https://app.example.com"},
		{description: "foreign origin", method: http.MethodGet, origin: "https://evil.example.com", expectStatus: http.StatusForbidden},
		{description: "foreign preflight", method: http.MethodOptions, origin: "https://evil.example.com", expectStatus: http.StatusForbidden},
		{description: "no origin", method: http.MethodGet, expectStatus: http.StatusUnauthorized},
	}
	for _, testCase := range testCases {
		req, err := http.NewRequest(testCase.method, apiServer.URL+IdentityURI, nil)
		require.NoError(t, err, testCase.description)
		if testCase.origin != "" {
			req.Header.Set("Origin", testCase.origin)
		}
		if testCase.method == http.MethodOptions {
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err, testCase.description)
		_ = resp.Body.Close()
		assert.Equal(t, testCase.expectStatus, resp.StatusCode, testCase.description)
		assert.Equal(t, testCase.expectOrigin, resp.Header.Get("Access-Control-Allow-Origin"), testCase.description)
		if testCase.expectOrigin != "" {
			assert.Equal(t, "WWW-Authenticate", resp.Header.Get("Access-Control-Expose-Headers"), testCase.description)
		}
	}
}

func TestOriginPolicy_Wildcard(t *testing.T) {
	policy := NewOriginPolicy("*")
	assert.True(t, policy.allows("https://any.example.com"))
	policy = NewOriginPolicy("https://app.example.com")
	assert.True(t, policy.allows("https://app.example.com"))
	assert.False(t, policy.allows("https://other.example.com"))
}

func TestBaseURL(t *testing.T) {
	var testCases = []struct {
		description string
		header      map[string]string
		expect      string
	}{
		{description: "direct", expect: "http://api.local:6001"},
		{description: "forwarded", header: map[string]string{"X-Forwarded-Proto": "HTTPS, http", "X-Forwarded-Host": "api.example.com"}, expect: "https://api.example.com"},
		{description: "forwarded proto only", header: map[string]string{"X-Forwarded-Proto": "https"}, expect: "https://api.local:6001"},
	}
	for _, testCase := range testCases {
		req := httptest.NewRequest(http.MethodGet, "http://api.local:6001/identity", nil)
		for k, v := range testCase.header {
			req.Header.Set(k, v)
		}
		assert.Equal(t, testCase.expect, baseURL(req), testCase.description)
	}
}

func TestClaims(t *testing.T) {
	claims := Claims(map[string]interface{}{
		"scope":     "api1",
		"client_id": "client",
		"aud":       []interface{}{"api2", "api1"},
		"exp":       float64(1700000000),
		"ext":       true,
		"missing":   nil,
	})
	assert.Equal(t, []*Claim{
		{Type: "aud", Value: "api1"},
		{Type: "aud", Value: "api2"},
		{Type: "client_id", Value: "client"},
		{Type: "exp", Value: "1700000000"},
		{Type: "ext", Value: "true"},
		{Type: "scope", Value: "api1"},
	}, claims)
}
