package domain

// Permission is an opaque capability tag. Authorization is exact set
// membership over these tags.
type Permission string

const (
	PermMembersView   Permission = "MEMBERS_VIEW"
	PermMembersCreate Permission = "MEMBERS_CREATE"
	PermMembersEdit   Permission = "MEMBERS_EDIT"
	PermMembersDelete Permission = "MEMBERS_DELETE"

	PermCarsView   Permission = "CARS_VIEW"
	PermCarsCreate Permission = "CARS_CREATE"
	PermCarsEdit   Permission = "CARS_EDIT"
	PermCarsDelete Permission = "CARS_DELETE"

	PermEventsView   Permission = "EVENTS_VIEW"
	PermEventsCreate Permission = "EVENTS_CREATE"
	PermEventsEdit   Permission = "EVENTS_EDIT"
	PermEventsDelete Permission = "EVENTS_DELETE"

	PermPhotosUpload Permission = "PHOTOS_UPLOAD"
	PermPhotosDelete Permission = "PHOTOS_DELETE"

	PermUsersView   Permission = "USERS_VIEW"
	PermUsersCreate Permission = "USERS_CREATE"
	PermUsersEdit   Permission = "USERS_EDIT"
	PermUsersDelete Permission = "USERS_DELETE"

	PermLogsView     Permission = "LOGS_VIEW"
	PermSettingsEdit Permission = "SETTINGS_EDIT"
)

type PermissionGroup struct {
	Area        string       `json:"area"`
	Permissions []Permission `json:"permissions"`
}

var permissionGroups = []PermissionGroup{
	{Area: "members", Permissions: []Permission{PermMembersView, PermMembersCreate, PermMembersEdit, PermMembersDelete}},
	{Area: "cars", Permissions: []Permission{PermCarsView, PermCarsCreate, PermCarsEdit, PermCarsDelete}},
	{Area: "events", Permissions: []Permission{PermEventsView, PermEventsCreate, PermEventsEdit, PermEventsDelete}},
	{Area: "photos", Permissions: []Permission{PermPhotosUpload, PermPhotosDelete}},
	{Area: "users", Permissions: []Permission{PermUsersView, PermUsersCreate, PermUsersEdit, PermUsersDelete}},
	{Area: "logs", Permissions: []Permission{PermLogsView}},
	{Area: "settings", Permissions: []Permission{PermSettingsEdit}},
}

// PermissionGroups returns the catalog grouped by area, in display order.
func PermissionGroups() []PermissionGroup {
	out := make([]PermissionGroup, 0, len(permissionGroups))
	for _, g := range permissionGroups {
		out = append(out, PermissionGroup{Area: g.Area, Permissions: append([]Permission(nil), g.Permissions...)})
	}
	return out
}

// AllPermissions returns the flat catalog.
func AllPermissions() []Permission {
	out := make([]Permission, 0, 20)
	for _, g := range permissionGroups {
		out = append(out, g.Permissions...)
	}
	return out
}

func IsKnownPermission(p string) bool {
	for _, g := range permissionGroups {
		for _, candidate := range g.Permissions {
			if string(candidate) == p {
				return true
			}
		}
	}
	return false
}

// PermissionStrings converts tags to their wire form.
func PermissionStrings(perms []Permission) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}
