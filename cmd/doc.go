// Package cmd implements the clientcredentials command line.
//
//	clientcredentials client    [-c config.yaml] [--runs N] [--strict]
//	clientcredentials authority [--addr :5001] [--cert server.crt --key server.key]
//	clientcredentials api       [--addr :6001] [--authority URL]
//
// The client and api default to the https://localhost:5001 authority. Without
// --cert/--key the authority serves plain http and publishes an http issuer, so
// the client and api then need a matching --authority (or config authority).
package cmd
