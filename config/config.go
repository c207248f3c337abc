// Package config holds the settings of a client credentials run: where the
// authority and the protected API live, and which client identity is used.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAuthority    = "https://localhost:5001"
	DefaultResourceBase = "https://localhost:6001"
	DefaultResourcePath = "/identity"
	DefaultClientID     = "client"
	DefaultClientSecret = "secret"
	DefaultScope        = "api1"
	DefaultTimeout      = 30 * time.Second
)

// Config defines a client credentials run.
type Config struct {
	Authority          string        `yaml:"authority" json:"authority"`
	ResourceBase       string        `yaml:"resourceBase" json:"resourceBase"`
	ResourcePath       string        `yaml:"resourcePath,omitempty" json:"resourcePath,omitempty"`
	ClientID           string        `yaml:"clientId" json:"clientId"`
	ClientSecret       string        `yaml:"clientSecret" json:"clientSecret"`
	Scope              string        `yaml:"scope" json:"scope"`
	Timeout            time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	InsecureSkipVerify bool          `yaml:"insecureSkipVerify,omitempty" json:"insecureSkipVerify,omitempty"`
	CABundle           string        `yaml:"caBundle,omitempty" json:"caBundle,omitempty"`
}

// ResourceURL returns the protected resource URL
func (c *Config) ResourceURL() string {
	if c.ResourcePath == "" {
		return c.ResourceBase
	}
	return url.Join(strings.TrimRight(c.ResourceBase, "/"), strings.TrimLeft(c.ResourcePath, "/"))
}

// Validate checks that the required settings are present.
// URL syntax is left to the transport.
func (c *Config) Validate() error {
	var errs []error
	if c.Authority == "" {
		errs = append(errs, errors.New("authority was empty"))
	}
	if c.ResourceBase == "" {
		errs = append(errs, errors.New("resource base was empty"))
	}
	if c.ClientID == "" {
		errs = append(errs, errors.New("client id was empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Clone returns a copy of the config
func (c *Config) Clone() *Config {
	ret := *c
	return &ret
}

// Default returns the demo settings
func Default() *Config {
	return &Config{
		Authority:    DefaultAuthority,
		ResourceBase: DefaultResourceBase,
		ResourcePath: DefaultResourcePath,
		ClientID:     DefaultClientID,
		ClientSecret: DefaultClientSecret,
		Scope:        DefaultScope,
		Timeout:      DefaultTimeout,
	}
}

// Load reads a YAML or JSON document from any afs supported URL and
// overlays it on the defaults.
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download config %v: %w", URL, err)
	}
	ret := Default()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	return ret, nil
}
