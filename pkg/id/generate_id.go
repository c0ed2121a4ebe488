package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 lowercase hex characters (a v4 uuid without dashes).
// All rows of one recurring WFH request share a single value.
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
