// Package token generates the opaque identifiers citizens use to reference
// their bookings without authentication.
package token

import (
	"strings"

	"github.com/google/uuid"
)

// Length of a booking token: 20 uppercase hex characters taken from a random
// 128-bit UUID. Collision probability is negligible at this scale, so there
// is no retry loop; the unique index on the token column is the backstop.
const Length = 20

// New returns a fresh 20-character uppercase alphanumeric booking token.
func New() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:Length])
}
