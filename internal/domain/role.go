package domain

import "time"

const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
	RoleViewer     = "viewer"
)

type Role struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Description string     `gorm:"size:255" json:"description"`
	Permissions StringList `gorm:"not null" json:"permissions"`
	UserCount   int64      `gorm:"-" json:"userCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsProtectedRole reports whether name is one of the built-in roles that
// can be neither renamed nor deleted.
func IsProtectedRole(name string) bool {
	switch name {
	case RoleSuperAdmin, RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

func (r Role) HasPermission(p Permission) bool {
	for _, candidate := range r.Permissions {
		if candidate == string(p) {
			return true
		}
	}
	return false
}

type DefaultRole struct {
	Name        string
	Description string
	Permissions []Permission
}

// DefaultRoles lists the built-in roles with their seeded permission bundles.
func DefaultRoles() []DefaultRole {
	return []DefaultRole{
		{
			Name:        RoleSuperAdmin,
			Description: "Full access to every feature",
			Permissions: AllPermissions(),
		},
		{
			Name:        RoleAdmin,
			Description: "Manage members, cars and events",
			Permissions: []Permission{
				PermMembersView, PermMembersCreate, PermMembersEdit,
				PermCarsView, PermCarsCreate, PermCarsEdit,
				PermEventsView, PermEventsCreate, PermEventsEdit,
				PermPhotosUpload, PermLogsView,
			},
		},
		{
			Name:        RoleEditor,
			Description: "Edit existing content",
			Permissions: []Permission{
				PermMembersView, PermMembersEdit,
				PermCarsView, PermCarsEdit,
				PermEventsView, PermEventsEdit,
				PermPhotosUpload,
			},
		},
		{
			Name:        RoleViewer,
			Description: "Read-only access",
			Permissions: []Permission{PermMembersView, PermCarsView, PermEventsView},
		},
	}
}
