// Package token requests OAuth2 client credentials access tokens.
//
// The request is delegated to golang.org/x/oauth2/clientcredentials with the
// client id and secret sent in the form body. Authority rejections and
// unreachable endpoints are reported through Result rather than returned as Go
// errors. Result.Raw keeps a successful authority response verbatim; the body of
// a rejection is available from the *oauth2.RetrieveError returned by Result.Err.
package token
