package session

import (
	"context"
	"errors"
	"time"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/pkg/util"
)

var (
	// ErrNotFound is returned when a token does not resolve to a live
	// session, whether it never existed or has expired.
	ErrNotFound = errors.New("session not found")
)

// Store maps opaque tokens to signed-in identities. Sessions live for a
// fixed TTL from creation; they are not extended on activity. The identity
// is a snapshot taken at login: role and ban changes only take effect on
// the user's next session.
type Store interface {
	Create(ctx context.Context, identity model.Identity) (string, error)
	Get(ctx context.Context, token string) (*model.Identity, error)
	Delete(ctx context.Context, token string) error
}

func newToken() string {
	return util.NewSessionToken()
}

// clock abstracts time for expiry tests against the memory store.
type clock func() time.Time
