// Package discovery fetches the OpenID Connect discovery document of an
// authority and extracts the endpoints needed by the client credentials flow.
//
// An unreachable authority is not a Go error: Fetch always returns a Result,
// whose Error starts with ConnectionErrorPrefix when the authority could not be
// contacted and with ProtocolErrorPrefix when the document was rejected.
package discovery
