package jwt

import (
	"testing"
	"time"

	"city-services-backend/config"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: time.Hour})
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "staff")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id %s, want %s", claims.UserID, userID)
	}
	if claims.Role != "staff" {
		t.Fatalf("role %q, want %q", claims.Role, "staff")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService(config.JWTConfig{Secret: "one", Expiry: time.Hour})
	verifier := NewJWTService(config.JWTConfig{Secret: "two", Expiry: time.Hour})

	token, err := issuer.GenerateToken(uuid.New(), "citizen")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: -time.Minute})

	token, err := svc.GenerateToken(uuid.New(), "citizen")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail for expired token")
	}
}
