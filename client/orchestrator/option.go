package orchestrator

import "github.com/viant/clientcredentials/config"

// Option configures the orchestrator
type Option func(o *Orchestrator)

// WithConfig sets run settings, defaults to config.Default()
func WithConfig(cfg *config.Config) Option {
	return func(o *Orchestrator) {
		if cfg != nil {
			o.config = cfg.Clone()
		}
	}
}
