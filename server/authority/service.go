package authority

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DiscoveryURI = "/.well-known/openid-configuration"
	JWKSURI      = DiscoveryURI + "/jwks"
	TokenURI     = "/connect/token"

	DefaultAddr          = ":5001"
	DefaultAudience      = "api1"
	DefaultTokenLifetime = time.Hour
)

// Client represents a registered confidential client
type Client struct {
	ID            string
	Secret        string
	AllowedScopes []string
}

func (c *Client) allows(scope string) bool {
	for _, candidate := range c.AllowedScopes {
		if candidate == scope {
			return true
		}
	}
	return false
}

// Service is a minimal client credentials authority used by tests and the demo
type Service struct {
	PrivateKey    *rsa.PrivateKey
	KeyID         string
	Issuer        string
	Audience      string
	TokenLifetime time.Duration
	clients       map[string]*Client
	logger        *zap.SugaredLogger
}

// Client returns a registered client
func (s *Service) Client(id string) (*Client, bool) {
	ret, ok := s.clients[id]
	return ret, ok
}

// Scopes returns all scopes granted to any client
func (s *Service) Scopes() []string {
	seen := map[string]bool{}
	var ret []string
	for _, client := range s.clients {
		for _, scope := range client.AllowedScopes {
			if !seen[scope] {
				seen[scope] = true
				ret = append(ret, scope)
			}
		}
	}
	sort.Strings(ret)
	return ret
}

// Register registers authority handlers onto the given ServeMux
func (s *Service) Register(mux *http.ServeMux) {
	mux.HandleFunc(DiscoveryURI, s.discoveryHandler)
	mux.HandleFunc(JWKSURI, s.jwksHandler)
	mux.HandleFunc(TokenURI, s.tokenHandler)
}

// Handler returns an http.Handler for all authority endpoints
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

// HTTP returns a server for addr, defaults to DefaultAddr
func (s *Service) HTTP(addr string) *http.Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &http.Server{Addr: addr, Handler: s.Handler()}
}

func (s *Service) endpoint(uri string) string {
	return strings.TrimRight(s.Issuer, "/") + uri
}

// New creates an authority with a fresh RSA signing key
func New(options ...Option) (*Service, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %w", err)
	}
	ret := &Service{
		PrivateKey:    privateKey,
		KeyID:         uuid.New().String(),
		Audience:      DefaultAudience,
		TokenLifetime: DefaultTokenLifetime,
		clients:       map[string]*Client{},
	}
	for _, opt := range options {
		opt(ret)
	}
	if len(ret.clients) == 0 {
		ret.clients["client"] = &Client{ID: "client", Secret: "secret", AllowedScopes: []string{DefaultAudience}}
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop().Sugar()
	}
	return ret, nil
}
