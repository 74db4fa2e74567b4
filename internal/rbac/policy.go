// Package rbac implements the role policy evaluated after the session gate.
package rbac

import (
	"fmt"

	"github.com/hireboard/hireboard/internal/shared"
)

// Require reports whether principal holds one of roles. Roles match exactly;
// there is no hierarchy between candidate and recruiter.
func Require(principal shared.Principal, roles ...shared.Role) error {
	if principal.IsZero() {
		return shared.ErrUnauthenticated
	}
	if len(roles) == 0 {
		return nil
	}
	for _, role := range roles {
		if principal.Role == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %q not permitted", shared.ErrForbidden, principal.Role)
}

// RequireOwner reports whether principal owns a resource whose stored owner
// reference is ownerID.
func RequireOwner(principal shared.Principal, ownerID string) error {
	if principal.IsZero() {
		return shared.ErrUnauthenticated
	}
	if ownerID == "" || principal.UserID != ownerID {
		return fmt.Errorf("%w: not the owner", shared.ErrForbidden)
	}
	return nil
}
