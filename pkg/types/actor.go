package types

import (
	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
)

// Actor identifies the authenticated caller for service-level access checks.
type Actor struct {
	UserID         uuid.UUID
	Role           enums.Role
	OwnerProfileID *uuid.UUID
}

// CanReadAll reports whether the actor may read records beyond their own profile.
func (a Actor) CanReadAll() bool {
	return a.Role.CanReadAll()
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.RoleAdmin
}
