package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/assessly-hq/assessly-services/api/internal/config"
)

// Claims carries the Assessly principal inside an HS256 JWT.
type Claims struct {
	jwt.RegisteredClaims
	Email          string `json:"email,omitempty"`
	Name           string `json:"name,omitempty"`
	Role           string `json:"role,omitempty"`
	OrganizationID string `json:"org,omitempty"`
}

// ErrInvalidToken is returned when no configured issuer accepts a token.
var ErrInvalidToken = errors.New("access token is invalid")

// GenerateToken mints an access token signed with the primary JWT config.
func GenerateToken(claims Claims, cfg config.JWTConfig, audience string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims.Issuer = cfg.Issuer
	claims.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now)
	claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if audience != "" {
		claims.RegisteredClaims.Audience = jwt.ClaimStrings{audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// ParseToken tries each configured issuer in order and returns the claims of
// the first config that verifies the signature and the registered claims.
func ParseToken(tokenString string, configs []config.JWTConfig, audience string) (*Claims, error) {
	if len(configs) == 0 {
		return nil, errors.New("no JWT configs available")
	}

	for _, cfg := range configs {
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return cfg.Secret, nil
		}, jwt.WithLeeway(30*time.Second))

		if err != nil || !token.Valid {
			continue
		}
		if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if audience != "" && !contains(claims.Audience, audience) {
			continue
		}

		return claims, nil
	}

	return nil, ErrInvalidToken
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
