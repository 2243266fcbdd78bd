package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	issuer, err := NewIssuer("test-secret", 30*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return issuer
}

func TestIssuePairRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)

	pair, err := issuer.IssuePair("user-1", "jane", true)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	access, err := issuer.VerifyType(pair.Access, TypeAccess)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if access.Sub != "user-1" || access.Username != "jane" || !access.Staff {
		t.Fatalf("unexpected access claims: %+v", access)
	}
	if access.Jti != "" {
		t.Fatalf("access token must not carry a jti")
	}

	refresh, err := issuer.VerifyType(pair.Refresh, TypeRefresh)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if refresh.Jti == "" {
		t.Fatalf("refresh token must carry a jti")
	}
	if refresh.Exp <= access.Exp {
		t.Fatalf("refresh expiry must outlive access expiry")
	}
}

func TestVerifyRejectsWrongType(t *testing.T) {
	issuer := newTestIssuer(t)

	access, err := issuer.IssueAccess("user-1", "jane", false)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := issuer.VerifyType(access, TypeRefresh); !errors.Is(err, ErrWrongType) {
		t.Fatalf("expected ErrWrongType, got %v", err)
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer := newTestIssuer(t)
	other, err := NewIssuer("other-secret", 30*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}

	token, err := other.IssueAccess("user-1", "jane", false)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuer := newTestIssuer(t)

	token, err := issuer.sign(Claims{Sub: "user-1", Typ: TypeAccess}, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	issuer := newTestIssuer(t)

	for _, token := range []string{"", "abc", "a.b", "a.b.c.d", "!!!.###.$$$"} {
		if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	if _, err := NewIssuer("  ", time.Minute, time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
