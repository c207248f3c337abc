// Package resource calls bearer protected resources.
//
// Unlike discovery and token requests, an unreachable resource server is
// returned as an error: callers must expect a fault when the API is down,
// whereas an authorization rejection is an ordinary 401 Result.
package resource
