package httpapi

import (
	"context"
	"crypto/subtle"
	"errors"

	"sportsbook/domain/interfaces"
)

// ErrNotAuthorized is returned when a token does not grant access
var ErrNotAuthorized = errors.New("not authorized")

// StaticAuthorizer accepts a single shared API token for every user. It stands
// in for the real authorization service in development and tests.
type StaticAuthorizer struct {
	token string
}

// NewStaticAuthorizer creates an authorizer accepting one shared token
func NewStaticAuthorizer(token string) *StaticAuthorizer {
	return &StaticAuthorizer{token: token}
}

// Authorize checks the presented token against the configured one
func (a *StaticAuthorizer) Authorize(ctx context.Context, token string, uid int64) error {
	if a.token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
		return ErrNotAuthorized
	}
	return nil
}

var _ interfaces.Authorizer = (*StaticAuthorizer)(nil)
