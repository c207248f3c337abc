package token

import "errors"

// ConnectionErrorPrefix starts the message of a result whose token endpoint could not be reached
const ConnectionErrorPrefix = "Error connecting to"

// ErrConnection marks an unreachable token endpoint
var ErrConnection = errors.New("token endpoint unreachable")

// ErrorType classifies a failed token request
type ErrorType string

const (
	// ErrorTypeNone marks a successful request
	ErrorTypeNone ErrorType = ""
	// ErrorTypeConnection marks a token endpoint that could not be reached
	ErrorTypeConnection ErrorType = "connection"
	// ErrorTypeProtocol marks a response rejected by the authority or not understood
	ErrorTypeProtocol ErrorType = "protocol"
)

// Result represents a token request outcome; either the error or the token fields are set.
//
// Error holds the authority defined error code (invalid_client, invalid_scope, ...)
// for protocol failures, or a connection message with HTTPStatusCode 0.
type Result struct {
	IsError          bool
	Error            string
	ErrorType        ErrorType
	ErrorDescription string
	HTTPStatusCode   int
	AccessToken      string
	TokenType        string
	ExpiresIn        int64
	Scope            string
	Raw              string
	cause            error
}

// Err returns the underlying failure or nil
func (r *Result) Err() error {
	return r.cause
}
