package token

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Request represents a client credentials token request
type Request struct {
	TokenEndpoint string
	ClientID      string
	ClientSecret  string
	Scope         string
}

// Requester obtains access tokens
type Requester interface {
	Request(ctx context.Context, request *Request) *Result
}

// Client requests client credentials tokens over a dedicated authority http client
type Client struct {
	httpClient *http.Client
}

// Request performs the token request, failures are reported through the result.
func (c *Client) Request(ctx context.Context, request *Request) *Result {
	recorder := newRecorder(c.httpClient)
	config := &clientcredentials.Config{
		ClientID:     request.ClientID,
		ClientSecret: request.ClientSecret,
		TokenURL:     request.TokenEndpoint,
		Scopes:       strings.Fields(request.Scope),
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, recorder.client())
	token, err := config.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return newProtocolError(retrieveErr)
		}
		if isConnectionError(err) {
			return newConnectionError(request.TokenEndpoint, err)
		}
		return newError(err)
	}
	return newResult(token, recorder.body())
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

func newProtocolError(err *oauth2.RetrieveError) *Result {
	ret := &Result{
		IsError:          true,
		ErrorType:        ErrorTypeProtocol,
		Error:            err.ErrorCode,
		ErrorDescription: err.ErrorDescription,
		cause:            err,
	}
	if err.Response != nil {
		ret.HTTPStatusCode = err.Response.StatusCode
	}
	if ret.Error == "" {
		ret.Error = http.StatusText(ret.HTTPStatusCode)
	}
	return ret
}

func newConnectionError(endpoint string, err error) *Result {
	return &Result{
		IsError:   true,
		ErrorType: ErrorTypeConnection,
		Error:     fmt.Sprintf("%s %s: %v", ConnectionErrorPrefix, endpoint, err),
		cause:     errors.Join(ErrConnection, err),
	}
}

func newError(err error) *Result {
	return &Result{
		IsError:   true,
		ErrorType: ErrorTypeProtocol,
		Error:     err.Error(),
		cause:     err,
	}
}

func newResult(token *oauth2.Token, raw []byte) *Result {
	ret := &Result{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
		Raw:         string(raw),
	}
	if scope, ok := token.Extra("scope").(string); ok {
		ret.Scope = scope
	}
	if ret.ExpiresIn == 0 {
		if expiresIn, ok := token.Extra("expires_in").(float64); ok {
			ret.ExpiresIn = int64(expiresIn)
		}
	}
	return ret
}

// New creates a token client, a nil httpClient uses http.DefaultClient
func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}
