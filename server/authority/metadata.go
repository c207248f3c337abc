package authority

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-jose/go-jose/v4"
)

// discoveryCacheMaxAge is the Cache-Control max-age of the discovery and JWKS documents
const discoveryCacheMaxAge = 3600

// Metadata represents the published discovery document
type Metadata struct {
	Issuer                            string   `json:"issuer"`
	JWKSURI                           string   `json:"jwks_uri"`
	TokenEndpoint                     string   `json:"token_endpoint"`
	ScopesSupported                   []string `json:"scopes_supported"`
	GrantTypesSupported               []string `json:"grant_types_supported"`
	ResponseTypesSupported            []string `json:"response_types_supported"`
	SubjectTypesSupported             []string `json:"subject_types_supported"`
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported"`
	IDTokenSigningAlgValuesSupported  []string `json:"id_token_signing_alg_values_supported"`
}

// Metadata returns the discovery document
func (s *Service) Metadata() *Metadata {
	return &Metadata{
		Issuer:                            s.Issuer,
		JWKSURI:                           s.endpoint(JWKSURI),
		TokenEndpoint:                     s.endpoint(TokenURI),
		ScopesSupported:                   s.Scopes(),
		GrantTypesSupported:               []string{GrantTypeClientCredentials},
		ResponseTypesSupported:            []string{"token"},
		SubjectTypesSupported:             []string{"public"},
		TokenEndpointAuthMethodsSupported: []string{"client_secret_basic", "client_secret_post"},
		IDTokenSigningAlgValuesSupported:  []string{string(jose.RS256)},
	}
}

// JWKS returns the public signing keys
func (s *Service) JWKS() *jose.JSONWebKeySet {
	return &jose.JSONWebKeySet{Keys: []jose.JSONWebKey{{
		Key:       &s.PrivateKey.PublicKey,
		KeyID:     s.KeyID,
		Algorithm: string(jose.RS256),
		Use:       "sig",
	}}}
}

func (s *Service) discoveryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeDocument(w, s.Metadata())
}

func (s *Service) jwksHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeDocument(w, s.JWKS())
}

func (s *Service) writeDocument(w http.ResponseWriter, document interface{}) {
	data, err := json.Marshal(document)
	if err != nil {
		s.logger.Errorw("failed to encode document", "error", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", discoveryCacheMaxAge))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write(data)
}
