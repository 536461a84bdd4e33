package models

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of access tokens issued by the account service.
// The subject is the account id. The server only verifies tokens.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// AccountID parses the subject claim.
func (c *Claims) AccountID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not an account id", ErrTokenInvalid)
	}
	return id, nil
}

type contextKey string

const (
	// AccountContextKey holds the authenticated account id in a request context.
	AccountContextKey contextKey = "accountID"
	// AccountIDGinKey is the same value stored on a gin.Context.
	AccountIDGinKey = "accountID"
)

func WithAccountID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, AccountContextKey, id)
}

// GetAccountIDFromContext extracts the account id put there by the auth middleware.
func GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(AccountContextKey).(uuid.UUID)
	return id, ok
}
