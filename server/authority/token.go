package authority

import (
	"encoding/json"
	"net/http"
	"strings"
)

// GrantTypeClientCredentials is the only grant the authority issues tokens for
const GrantTypeClientCredentials = "client_credentials"

// Token endpoint error codes (RFC 6749 section 5.2)
const (
	ErrorInvalidRequest       = "invalid_request"
	ErrorInvalidClient        = "invalid_client"
	ErrorInvalidScope         = "invalid_scope"
	ErrorUnsupportedGrantType = "unsupported_grant_type"
)

// TokenResponse represents a successful token endpoint response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}

// ErrorResponse represents a token endpoint error
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// tokenHandler handles client credentials token requests
func (s *Service) tokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.tokenError(w, ErrorInvalidRequest, "", "")
		return
	}
	if grantType := r.PostFormValue("grant_type"); grantType != GrantTypeClientCredentials {
		s.tokenError(w, ErrorUnsupportedGrantType, "", grantType)
		return
	}
	clientID, clientSecret, ok := r.BasicAuth()
	if !ok {
		clientID = r.PostFormValue("client_id")
		clientSecret = r.PostFormValue("client_secret")
	}
	if clientID == "" {
		s.tokenError(w, ErrorInvalidRequest, clientID, "")
		return
	}
	client, ok := s.Client(clientID)
	if !ok || client.Secret != clientSecret {
		s.tokenError(w, ErrorInvalidClient, clientID, "")
		return
	}
	scopes := strings.Fields(r.PostFormValue("scope"))
	if len(scopes) == 0 {
		scopes = client.AllowedScopes
	}
	for _, scope := range scopes {
		if !client.allows(scope) {
			s.tokenError(w, ErrorInvalidScope, clientID, scope)
			return
		}
	}
	scope := strings.Join(scopes, " ")
	accessToken, err := s.createJWT(client.ID, scope)
	if err != nil {
		s.logger.Errorw("failed to sign access token", "client_id", clientID, "error", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	s.logger.Infow("issued access token", "client_id", clientID, "scope", scope)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	_ = json.NewEncoder(w).Encode(&TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.TokenLifetime.Seconds()),
		TokenType:   "Bearer",
		Scope:       scope,
	})
}

// tokenError writes an RFC 6749 JSON error, every code including invalid_client is sent with 400
func (s *Service) tokenError(w http.ResponseWriter, code, clientID, detail string) {
	s.logger.Warnw("rejected token request", "client_id", clientID, "error", code, "detail", detail)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(&ErrorResponse{Error: code})
}
