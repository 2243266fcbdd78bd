package authz

import (
	"github.com/gin-gonic/gin"

	"github.com/KarimovMurodilla/lead-management-system/internal/shared/server/middleware"
)

// Identity is the authenticated caller as seen by policy checks.
type Identity struct {
	UserID   string
	Username string
	IsStaff  bool
}

// FromContext reads the identity stored by the auth middleware.
func FromContext(c *gin.Context) Identity {
	return Identity{
		UserID:   middleware.UserIDFromContext(c),
		Username: middleware.UsernameFromContext(c),
		IsStaff:  middleware.IsStaffFromContext(c),
	}
}

// Owned is implemented by objects with a designated owner. Objects that
// cannot be owned simply do not implement it.
type Owned interface {
	OwnerID() string
}

// IsStaff passes iff the caller is authenticated and flagged staff.
func IsStaff(id Identity) bool {
	return id.UserID != "" && id.IsStaff
}

// CanAccess passes iff the caller is staff, or obj is owned by the caller.
// Objects that do not implement Owned never pass for non-staff callers.
func CanAccess(id Identity, obj any) bool {
	if IsStaff(id) {
		return true
	}
	if id.UserID == "" {
		return false
	}
	owned, ok := obj.(Owned)
	if !ok {
		return false
	}
	return owned.OwnerID() == id.UserID
}
