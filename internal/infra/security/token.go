package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("security: invalid identity token")

// Identity is the verified claim set from the external identity provider.
// It proves who the caller is; role always comes from the profile record.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Role    string
}

// TokenVerifier validates identity-provider access tokens signed with the
// shared HMAC secret.
type TokenVerifier struct {
	Secret []byte
	Leeway time.Duration
}

func (v TokenVerifier) Verify(raw string) (Identity, error) {
	if len(v.Secret) == 0 {
		return Identity{}, errors.New("security: verifier secret not configured")
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identity{}, ErrInvalidToken
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if v.Leeway > 0 {
		opts = append(opts, jwt.WithLeeway(v.Leeway))
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.Secret, nil
	}, opts...)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return Identity{
		Subject: sub,
		Email:   stringClaim(claims, "email"),
		Name:    stringClaim(claims, "name"),
		Role:    stringClaim(claims, "role"),
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
