package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	// PermissionClassesRead allows viewing one's own class sessions.
	PermissionClassesRead Permission = "classes:read"

	// PermissionClassesWrite allows deleting one's own class sessions.
	PermissionClassesWrite Permission = "classes:write"

	// PermissionRevenueRead allows viewing and archiving revenue reports.
	PermissionRevenueRead Permission = "revenue:read"

	// PermissionTeachersRead allows viewing teacher records on the dashboard.
	PermissionTeachersRead Permission = "teachers:read"

	// PermissionStudentsHide allows hiding new-student signups.
	PermissionStudentsHide Permission = "students:hide"

	// PermissionSettingsRead allows viewing application settings.
	PermissionSettingsRead Permission = "settings:read"

	// PermissionSettingsWrite allows editing application settings.
	PermissionSettingsWrite Permission = "settings:write"
)

// TeacherPermissions are granted to every active teacher.
var TeacherPermissions = []Permission{
	PermissionClassesRead,
	PermissionClassesWrite,
}

// AdminPermissions are granted on top of TeacherPermissions to admins.
var AdminPermissions = []Permission{
	PermissionRevenueRead,
	PermissionTeachersRead,
	PermissionStudentsHide,
	PermissionSettingsRead,
	PermissionSettingsWrite,
}

// PermissionsFor returns the permission codes a teacher is entitled to.
func PermissionsFor(t *Teacher) []string {
	perms := make([]string, 0, len(TeacherPermissions)+len(AdminPermissions))
	for _, p := range TeacherPermissions {
		perms = append(perms, string(p))
	}
	if t.Admin {
		for _, p := range AdminPermissions {
			perms = append(perms, string(p))
		}
	}
	return perms
}
