package shared

import "strings"

// Role is the exact-match authorization role carried by a user.
type Role string

// Platform roles. There is no hierarchy between them.
const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// Roles lists every role a user may register with.
func Roles() []Role {
	return []Role{RoleCandidate, RoleRecruiter}
}

// ParseRole normalises raw input into a known role.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Roles() {
		if role == known {
			return role, true
		}
	}
	return "", false
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleRecruiter
}
