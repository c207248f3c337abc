package cmd

import (
	"context"
	"time"

	"github.com/viant/clientcredentials/config"
)

// Options represents the command line
type Options struct {
	LogLevel  string           `long:"log-level" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	LogFormat string           `long:"log-format" description:"log encoding" choice:"console" choice:"json" default:"console"`
	Client    ClientOptions    `command:"client" description:"run the client credentials flow against the protected API"`
	Authority AuthorityOptions `command:"authority" description:"serve the demo authorization server"`
	API       APIOptions       `command:"api" description:"serve the demo protected API"`
}

// ClientOptions represents the client command
type ClientOptions struct {
	ConfigURL          string        `short:"c" long:"config" description:"yaml or json config URL"`
	Authority          string        `short:"a" long:"authority" env:"CC_AUTHORITY" description:"authority base URL"`
	Resource           string        `short:"r" long:"resource" env:"CC_RESOURCE" description:"protected API base URL"`
	ResourcePath       string        `short:"p" long:"path" description:"protected resource path"`
	ClientID           string        `long:"client-id" env:"CC_CLIENT_ID" description:"client id"`
	ClientSecret       string        `long:"client-secret" env:"CC_CLIENT_SECRET" description:"client secret"`
	Scope              string        `long:"scope" env:"CC_SCOPE" description:"space separated scopes"`
	Timeout            time.Duration `long:"timeout" description:"request timeout"`
	InsecureSkipVerify bool          `short:"k" long:"insecure" description:"skip server certificate verification"`
	CABundle           string        `long:"ca-bundle" description:"CA certificate bundle path"`
	Runs               int           `short:"n" long:"runs" description:"number of concurrent runs" default:"1"`
	Strict             bool          `long:"strict" description:"exit with an error when any run aborted"`
}

// Config returns defaults overlaid with the config file and then the command line
func (o *ClientOptions) Config(ctx context.Context) (*config.Config, error) {
	ret := config.Default()
	if o.ConfigURL != "" {
		var err error
		if ret, err = config.Load(ctx, o.ConfigURL); err != nil {
			return nil, err
		}
	}
	override(&ret.Authority, o.Authority)
	override(&ret.ResourceBase, o.Resource)
	override(&ret.ResourcePath, o.ResourcePath)
	override(&ret.ClientID, o.ClientID)
	override(&ret.ClientSecret, o.ClientSecret)
	override(&ret.Scope, o.Scope)
	override(&ret.CABundle, o.CABundle)
	if o.Timeout > 0 {
		ret.Timeout = o.Timeout
	}
	if o.InsecureSkipVerify {
		ret.InsecureSkipVerify = true
	}
	return ret, ret.Validate()
}

func override(target *string, value string) {
	if value != "" {
		*target = value
	}
}

// AuthorityOptions represents the authority command
type AuthorityOptions struct {
	Addr         string        `long:"addr" description:"listen address" default:":5001"`
	Issuer       string        `long:"issuer" description:"issuer URL, defaults to the listen address"`
	ClientID     string        `long:"client-id" description:"registered client id" default:"client"`
	ClientSecret string        `long:"client-secret" description:"registered client secret" default:"secret"`
	Scopes       []string      `long:"scope" description:"scope allowed for the client" default:"api1"`
	Audience     string        `long:"audience" description:"access token audience" default:"api1"`
	Lifetime     time.Duration `long:"lifetime" description:"access token lifetime" default:"1h"`
	Cert         string        `long:"cert" description:"TLS certificate path"`
	Key          string        `long:"key" description:"TLS key path"`
}

// APIOptions represents the api command
type APIOptions struct {
	Addr               string   `long:"addr" description:"listen address" default:":6001"`
	Authority          string   `short:"a" long:"authority" env:"CC_AUTHORITY" description:"trusted authority URL" default:"https://localhost:5001"`
	Audience           string   `long:"audience" description:"expected token audience" default:"api1"`
	JWKSURL            string   `long:"jwks" description:"JWKS URL, discovered from the authority when empty"`
	AllowOrigins       []string `long:"allow-origin" description:"CORS allowed origin"`
	InsecureSkipVerify bool     `short:"k" long:"insecure" description:"skip authority certificate verification"`
	CABundle           string   `long:"ca-bundle" description:"CA certificate bundle path"`
	Cert               string   `long:"cert" description:"TLS certificate path"`
	Key                string   `long:"key" description:"TLS key path"`
}
