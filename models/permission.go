package models

// Permission names a gated action. Handlers check permissions through this
// enum instead of raw role comparisons so the allowed-role table lives in
// exactly one place.
type Permission string

const (
	PermManageUsers        Permission = "manage-users"
	PermManagePortfolios   Permission = "manage-portfolios"
	PermEvaluatePortfolios Permission = "evaluate-portfolios"
	PermSubmitPortfolios   Permission = "submit-portfolios"
	PermManageRubrics      Permission = "manage-rubrics"
	PermManageSystem       Permission = "manage-system"
)

// AllPermissions lists every permission in the table.
var AllPermissions = []Permission{
	PermManageUsers,
	PermManagePortfolios,
	PermEvaluatePortfolios,
	PermSubmitPortfolios,
	PermManageRubrics,
	PermManageSystem,
}

// permissionRoles is the full permission table. Absence denies: a role not
// listed for a permission never holds it, and roles do not inherit from each
// other (admin does not get evaluate-portfolios, etc).
var permissionRoles = map[Permission][]Role{
	PermManageUsers:        {RoleSuperAdmin, RoleAdmin},
	PermManagePortfolios:   {RoleSuperAdmin, RoleAdmin},
	PermEvaluatePortfolios: {RoleEvaluator},
	PermSubmitPortfolios:   {RoleApplicant},
	PermManageRubrics:      {RoleSuperAdmin, RoleAdmin},
	PermManageSystem:       {RoleSuperAdmin},
}

// Allows reports whether the given role holds this permission. Unknown
// permissions and unknown roles both deny.
func (p Permission) Allows(role Role) bool {
	roles, ok := permissionRoles[p]
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

// PermissionFlags returns the full permission map for one role, used by the
// session context endpoint so the frontend can toggle UI affordances.
func PermissionFlags(role Role) map[string]bool {
	flags := make(map[string]bool, len(AllPermissions))
	for _, p := range AllPermissions {
		flags[string(p)] = p.Allows(role)
	}
	return flags
}
