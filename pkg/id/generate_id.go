package id

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID32 renders a random v4 UUID as 32 lowercase hex chars. Used for
// review ids, which are stored in char(32) columns.
func NewID32() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// IsID32 reports whether s has the NewID32 shape.
func IsID32(s string) bool {
	if len(s) != 32 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
