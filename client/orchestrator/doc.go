// Package orchestrator sequences a client credentials run:
// discovery, token request, then the protected resource call.
//
// Every failure ends the run; nothing is retried and no state is kept between
// runs, so a single Orchestrator may execute concurrently.
package orchestrator
