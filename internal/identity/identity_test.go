package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
)

func TestIssueAndParseToken(t *testing.T) {
	actor := Actor{UserID: snowflake.ID(42), Role: "representative"}
	raw, err := IssueToken("secret", actor, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parsed, err := ParseToken("secret", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.UserID != actor.UserID {
		t.Fatalf("expected user id %v, got %v", actor.UserID, parsed.UserID)
	}
	if parsed.Role != "representative" {
		t.Fatalf("expected role representative, got %q", parsed.Role)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	raw, err := IssueToken("secret", Actor{UserID: snowflake.ID(1), Role: "admin"}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseToken("other", raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	raw, err := IssueToken("secret", Actor{UserID: snowflake.ID(1), Role: "admin"}, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseToken("secret", raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
