package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	a := NewAuthenticator("test-secret", time.Hour)

	token, err := a.GenerateToken("client-42")
	if err != nil {
		t.Fatalf("cannot generate token: %v", err)
	}

	claims, err := a.ParseToken(token)
	if err != nil {
		t.Fatalf("cannot parse token: %v", err)
	}
	if claims.ClientID != "client-42" {
		t.Fatalf("client id %q", claims.ClientID)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := NewAuthenticator("secret-one", time.Hour).GenerateToken("client-1")
	if err != nil {
		t.Fatalf("cannot generate token: %v", err)
	}
	if _, err := NewAuthenticator("secret-two", time.Hour).ParseToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := NewAuthenticator("secret", -time.Minute).GenerateToken("client-1")
	if err != nil {
		t.Fatalf("cannot generate token: %v", err)
	}
	if _, err := NewAuthenticator("secret", time.Hour).ParseToken(token); err == nil {
		t.Fatal("expired token must be rejected")
	}
}
