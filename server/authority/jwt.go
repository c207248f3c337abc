package authority

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// createJWT creates a signed access token for clientID with the granted scope
func (s *Service) createJWT(clientID, scope string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":       s.Issuer,
		"aud":       s.Audience,
		"client_id": clientID,
		"scope":     scope,
		"iat":       now.Unix(),
		"nbf":       now.Unix(),
		"exp":       now.Add(s.TokenLifetime).Unix(),
		"jti":       uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = s.KeyID
	token.Header["typ"] = "at+jwt"
	return token.SignedString(s.PrivateKey)
}
