package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestVerifyExtractsIdentityClaims(t *testing.T) {
	secret := []byte("test-secret")
	raw := signToken(t, secret, jwt.MapClaims{
		"sub":   "user-1",
		"email": "u1@example.com",
		"name":  "Dana",
		"role":  "host",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	v := TokenVerifier{Secret: secret}
	identity, err := v.Verify(raw)
	if err != nil {
		t.Fatal(err)
	}
	if identity.Subject != "user-1" || identity.Email != "u1@example.com" || identity.Name != "Dana" || identity.Role != "host" {
		t.Fatalf("identity = %+v", identity)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw := signToken(t, []byte("right"), jwt.MapClaims{"sub": "user-1"})
	v := TokenVerifier{Secret: []byte("wrong")}
	if _, err := v.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpiredTokenOutsideLeeway(t *testing.T) {
	secret := []byte("test-secret")
	raw := signToken(t, secret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	v := TokenVerifier{Secret: secret, Leeway: 30 * time.Second}
	if _, err := v.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	secret := []byte("test-secret")
	raw := signToken(t, secret, jwt.MapClaims{"email": "u1@example.com"})
	v := TokenVerifier{Secret: secret}
	if _, err := v.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsEmptyToken(t *testing.T) {
	v := TokenVerifier{Secret: []byte("s")}
	if _, err := v.Verify("   "); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestServiceCredentialCheck(t *testing.T) {
	if err := ServiceCredential("").Check(); !errors.Is(err, ErrServiceCredentialMissing) {
		t.Fatalf("empty credential: got %v", err)
	}
	if err := ServiceCredential("  ").Check(); !errors.Is(err, ErrServiceCredentialMissing) {
		t.Fatalf("blank credential: got %v", err)
	}
	if err := ServiceCredential("key").Check(); err != nil {
		t.Fatalf("configured credential: got %v", err)
	}
}
