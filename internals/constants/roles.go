package constants

import "fmt"

const (
	RoleAdmin      = "admin"
	RoleTeacher    = "teacher"
	RoleDiscipline = "discipline"
)

// Role error message templates
const (
	ErrOnlyTeachersCanAccess   = "Only teachers or admins may access %s."
	ErrOnlyAdminsCanAccess     = "Only admins may access %s."
	ErrOnlyStaffCanAccess      = "Only staff roles may access %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleTeacher,
		RoleDiscipline,
	}

	TeacherAndAbove = []string{
		RoleTeacher,
		RoleAdmin,
	}

	DisciplineAndAbove = []string{
		RoleDiscipline,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
