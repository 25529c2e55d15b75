package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
)

// Actor is the authenticated caller extracted from a bearer token. Session
// issuance lives outside this service; only claim parsing happens here.
type Actor struct {
	UserID snowflake.ID
	Role   string
}

// Subject renders the actor in the form the authorization layer expects.
func (a Actor) Subject() string { return "user:" + a.UserID.String() }

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool { return a.Role == "admin" }

var (
	ErrInvalidToken = errors.New("invalid_token")
	ErrMissingClaim = errors.New("missing_claim")
)

type contextKey struct{}

// WithActor stores the actor on the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

// FromContext returns the actor stored on the context, if any.
func FromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(contextKey{}).(Actor)
	return actor, ok
}

// ParseToken validates an HS256 bearer token and extracts the actor claims
// (sub = user id, role).
func ParseToken(secret, raw string) (Actor, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Actor{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return Actor{}, ErrMissingClaim
	}
	userID, err := snowflake.ParseString(strings.TrimSpace(sub))
	if err != nil {
		return Actor{}, ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return Actor{}, ErrMissingClaim
	}

	return Actor{UserID: userID, Role: role}, nil
}

// IssueToken signs an actor token. Used by the seed bootstrap and tests; the
// production identity provider issues its own.
func IssueToken(secret string, actor Actor, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  actor.UserID.String(),
		"role": actor.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
