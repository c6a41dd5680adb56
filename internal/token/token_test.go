package token

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	signed, err := issuer.Issue("user-1", "+881700000000", "USER")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("subject %q", claims.Subject)
	}
	if claims.Phone != "+881700000000" {
		t.Fatalf("phone %q", claims.Phone)
	}
	if claims.Role != "USER" {
		t.Fatalf("role %q", claims.Role)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute)
	now := time.Now()
	issuer.now = func() time.Time { return now }

	signed, err := issuer.Issue("user-1", "+881700000000", "USER")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := issuer.Verify(signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := NewIssuer("secret", time.Hour).Issue("user-1", "+881700000000", "USER")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer("other", time.Hour).Verify(signed); err == nil {
		t.Fatal("expected signature mismatch to be rejected")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := NewIssuer("secret", time.Hour).Verify("not.a.token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
