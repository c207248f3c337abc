package orchestrator

import (
	"github.com/viant/clientcredentials/client/auth/discovery"
	"github.com/viant/clientcredentials/client/auth/token"
	"github.com/viant/clientcredentials/client/resource"
)

// Outcome records a single run, steps that did not execute are nil
type Outcome struct {
	RunID     string
	State     State
	Discovery *discovery.Result
	Token     *token.Result
	Resource  *resource.Result
	Claims    []interface{}
}

// Succeeded returns true when the protected resource returned a success response
func (o *Outcome) Succeeded() bool {
	return o.State == Finished && o.Resource != nil && o.Resource.IsSuccess
}
