package api

import (
	"encoding/json"
	"net/http"
)

// ProtectedResource represents OAuth 2.0 protected resource metadata (RFC 9728)
type ProtectedResource struct {
	Resource               string   `json:"resource"`
	AuthorizationServers   []string `json:"authorization_servers,omitempty"`
	ScopesSupported        []string `json:"scopes_supported,omitempty"`
	BearerMethodsSupported []string `json:"bearer_methods_supported,omitempty"`
}

// ProtectedResource returns metadata for the API reachable at resource
func (s *Service) ProtectedResource(resource string) *ProtectedResource {
	return &ProtectedResource{
		Resource:               resource,
		AuthorizationServers:   s.authorizationServers,
		ScopesSupported:        s.scopes,
		BearerMethodsSupported: []string{"header"},
	}
}

func (s *Service) protectedResourceHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.ProtectedResource(baseURL(r)))
}
