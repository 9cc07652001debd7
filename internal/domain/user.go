package domain

import "fmt"

// Role describes which side of the marketplace a user acts on.
type Role string

const (
	// RoleAdvertiser marks users who post ad requests.
	RoleAdvertiser Role = "advertiser"
	// RoleSeller marks users who list their channels.
	RoleSeller Role = "seller"
)

// ParseRole validates a raw role value coming from a command or callback.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdvertiser:
		return RoleAdvertiser, nil
	case RoleSeller:
		return RoleSeller, nil
	}
	return "", &ValidationError{Field: "role", Reason: fmt.Sprintf("unknown role %q", raw)}
}

// Valid reports whether the role is one of the two known values.
func (r Role) Valid() bool {
	return r == RoleAdvertiser || r == RoleSeller
}

// User is a marketplace participant keyed by the Telegram user id.
// Role selection upserts the row; a later selection replaces the prior role.
type User struct {
	ID       int64  `db:"user_id"`
	Role     Role   `db:"role"`
	Username string `db:"username"`
}
