package immich

import "github.com/google/uuid"

// IsValidUUID reports whether s is a canonical lowercase UUID
// (8-4-4-4-12 hex digits). Uppercase, braced, and URN forms are rejected.
func IsValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	// Parse also accepts uppercase hex; round-tripping through the
	// canonical form catches those.
	return u.String() == s
}
