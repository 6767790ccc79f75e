package models

import (
	"strings"

	"github.com/google/uuid"
)

const shortCodeLen = 9

// NewID returns an opaque identifier for products, addresses and logs.
func NewID() string {
	return uuid.NewString()
}

// NewShortCode returns a 9 character uppercase code used for order and user ids.
func NewShortCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:shortCodeLen])
}
