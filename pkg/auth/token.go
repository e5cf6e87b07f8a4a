package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// MintAdminSession issues a signed JWT for the operator using the configured TTL.
func MintAdminSession(cfg config.AdminConfig, now time.Time, username string) (string, error) {
	if cfg.SessionSecret == "" {
		return "", fmt.Errorf("session secret is required")
	}
	if cfg.SessionIssuer == "" {
		return "", fmt.Errorf("session issuer is required")
	}
	if username == "" {
		return "", fmt.Errorf("username is required")
	}

	claims := AdminSessionClaims{
		Username: username,
		Role:     AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.SessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.SessionTTL())),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseAdminSession validates the JWT string and returns typed claims.
func ParseAdminSession(cfg config.AdminConfig, tokenString string) (*AdminSessionClaims, error) {
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("session secret is required")
	}

	claims := &AdminSessionClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.SessionSecret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.SessionIssuer),
	)
	if err != nil {
		return nil, err
	}
	if claims.Role != AdminRole {
		return nil, fmt.Errorf("unexpected role %q", claims.Role)
	}

	return claims, nil
}
