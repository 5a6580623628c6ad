package util

import (
	"github.com/google/uuid"
)

// NewSessionToken returns an opaque session token. The token carries no
// information about the user; identity lives server-side in the session store.
func NewSessionToken() string {
	return uuid.NewString()
}
