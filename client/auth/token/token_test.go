package token

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/clientcredentials/server/authority"
	"golang.org/x/oauth2"
)

func TestClient_Request(t *testing.T) {
	server, err := authority.NewHTTPTestServer()
	require.NoError(t, err)
	defer server.Close()

	var testCases = []struct {
		description string
		request     *Request
		expectError string
		expectScope string
	}{
		{
			description: "valid credentials",
			request:     &Request{ClientID: "client", ClientSecret: "secret", Scope: "api1"},
			expectScope: "api1",
		},
		{
			description: "bad client id",
			request:     &Request{ClientID: "client_id_is_bad", ClientSecret: "secret", Scope: "api1"},
			expectError: "invalid_client",
		},
		{
			description: "bad client secret",
			request:     &Request{ClientID: "client", ClientSecret: "secret_is_bad", Scope: "api1"},
			expectError: "invalid_client",
		},
		{
			description: "bad scope",
			request:     &Request{ClientID: "client", ClientSecret: "secret", Scope: "api1_bad_scope"},
			expectError: "invalid_scope",
		},
	}

	client := New(nil)
	for _, testCase := range testCases {
		testCase.request.TokenEndpoint = server.Issuer + authority.TokenURI
		result := client.Request(context.Background(), testCase.request)
		require.NotNil(t, result, testCase.description)
		if testCase.expectError != "" {
			assert.True(t, result.IsError, testCase.description)
			assert.Equal(t, ErrorTypeProtocol, result.ErrorType, testCase.description)
			assert.Equal(t, testCase.expectError, result.Error, testCase.description)
			assert.Equal(t, http.StatusBadRequest, result.HTTPStatusCode, testCase.description)
			assert.Empty(t, result.Raw, testCase.description)
			assert.Empty(t, result.AccessToken, testCase.description)
			var retrieveErr *oauth2.RetrieveError
			require.True(t, errors.As(result.Err(), &retrieveErr), testCase.description)
			assert.Contains(t, string(retrieveErr.Body), testCase.expectError, testCase.description)
			continue
		}
		assert.False(t, result.IsError, testCase.description)
		assert.NotEmpty(t, result.AccessToken, testCase.description)
		assert.Equal(t, "Bearer", result.TokenType, testCase.description)
		assert.EqualValues(t, 3600, result.ExpiresIn, testCase.description)
		assert.Equal(t, testCase.expectScope, result.Scope, testCase.description)
		assert.Contains(t, result.Raw, result.AccessToken, testCase.description)
		assert.NoError(t, result.Err(), testCase.description)
	}
}

func TestClient_RequestUnreachable(t *testing.T) {
	server, err := authority.NewHTTPTestServer()
	require.NoError(t, err)
	endpoint := server.Issuer + authority.TokenURI
	server.Close()

	result := New(nil).Request(context.Background(), &Request{TokenEndpoint: endpoint, ClientID: "client", ClientSecret: "secret", Scope: "api1"})
	require.True(t, result.IsError)
	assert.Equal(t, ErrorTypeConnection, result.ErrorType)
	assert.True(t, strings.HasPrefix(result.Error, ConnectionErrorPrefix+" "+endpoint))
	assert.Equal(t, 0, result.HTTPStatusCode)
	assert.ErrorIs(t, result.Err(), ErrConnection)
}
