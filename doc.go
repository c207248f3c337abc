// Package clientcredentials demonstrates the OAuth2 client credentials grant.
//
// A run discovers the authority token endpoint, requests an access token with
// the client id and secret, then calls a bearer protected API:
//
//	service, _ := clientcredentials.NewClient(config.Default(), logger)
//	outcome, err := service.Execute(ctx)
//
// The server/authority and server/api packages provide an in-process
// authorization server and protected API for tests and the demo command.
package clientcredentials
