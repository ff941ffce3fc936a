package utils

import "github.com/google/uuid"

// NewOpaqueToken returns a random token long enough to serve as a
// refresh-token key. It carries no claims; the store maps it to the owner.
func NewOpaqueToken() string {
	return uuid.NewString() + uuid.NewString()
}
