package constants

import "wasteline-backend/internal/domain"

// Permissions gating role-specific operations.
const (
	CreateListing     = "create_listing"
	TransitionListing = "transition_listing"
	CreateReport      = "create_report"
	UpdateOwnStatus   = "update_own_status"
)

// PermissionRoles maps each permission to the roles allowed to perform it.
var PermissionRoles = map[string][]string{
	CreateListing:     {domain.RoleResident},
	CreateReport:      {domain.RoleResident},
	TransitionListing: {domain.RoleCollector},
	UpdateOwnStatus:   {domain.RoleCollector},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
