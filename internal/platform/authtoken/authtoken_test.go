package authtoken

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueAndParse(t *testing.T) {
	iss, err := NewIssuer("s3cret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	id := uuid.New()
	tok, err := iss.Issue(id, "lin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := iss.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, _ := claims.UserID()
	if got != id || claims.Username != "lin" {
		t.Fatalf("claims=%+v", claims)
	}
}

func TestParseRejects(t *testing.T) {
	iss, _ := NewIssuer("s3cret", time.Hour)
	other, _ := NewIssuer("other", time.Hour)
	foreign, _ := other.Issue(uuid.New(), "x")

	expired, _ := NewIssuer("s3cret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _ := expired.Issue(uuid.New(), "x")

	for name, tok := range map[string]string{
		"empty":     "",
		"garbage":   "not.a.jwt",
		"signature": foreign,
		"expired":   stale,
	} {
		if _, err := iss.Parse(tok); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: err=%v want ErrInvalid", name, err)
		}
	}
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	if _, err := NewIssuer("  ", 0); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("err=%v", err)
	}
	iss, _ := NewIssuer("k", 0)
	if iss.TTL() != DefaultTTL {
		t.Fatalf("ttl=%v", iss.TTL())
	}
}
