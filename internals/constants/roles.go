package constants

import "fmt"

const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleResident = "resident"
)

// Role error templates
const (
	ErrOnlyAdminsCanAccess = "❌ Only admins may access %s."
	ErrOnlyStaffCanAccess  = "❌ Only admins or staff may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleStaff,
		RoleResident,
	}

	StaffAndAbove = []string{
		RoleAdmin,
		RoleStaff,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// Locals keys set by the auth middleware.
const (
	LocalUserID     = "user_id"
	LocalUserRole   = "userRole"
	LocalUserEmail  = "user_email"
	LocalResidentID = "resident_id"
)
