package models

import "testing"

// expectedPermissionTable mirrors the permission table; the test asserts exact
// membership in both directions so an accidental grant fails as loudly as a
// missing one.
var expectedPermissionTable = map[Permission]map[Role]bool{
	PermManageUsers:        {RoleSuperAdmin: true, RoleAdmin: true},
	PermManagePortfolios:   {RoleSuperAdmin: true, RoleAdmin: true},
	PermEvaluatePortfolios: {RoleEvaluator: true},
	PermSubmitPortfolios:   {RoleApplicant: true},
	PermManageRubrics:      {RoleSuperAdmin: true, RoleAdmin: true},
	PermManageSystem:       {RoleSuperAdmin: true},
}

func TestPermissionTableExactMembership(t *testing.T) {
	if len(AllPermissions) != len(expectedPermissionTable) {
		t.Fatalf("expected %d permissions, got %d", len(expectedPermissionTable), len(AllPermissions))
	}

	for _, perm := range AllPermissions {
		expected, ok := expectedPermissionTable[perm]
		if !ok {
			t.Fatalf("unexpected permission %q", perm)
		}
		for _, role := range AllRoles {
			got := perm.Allows(role)
			if got != expected[role] {
				t.Errorf("Allows(%q, %q) = %v, want %v", perm, role, got, expected[role])
			}
		}
	}
}

func TestPermissionFailsClosed(t *testing.T) {
	if Permission("made-up-action").Allows(RoleSuperAdmin) {
		t.Error("unknown permission must deny even super_admin")
	}
	for _, perm := range AllPermissions {
		if perm.Allows(Role("ghost")) {
			t.Errorf("%q must deny unknown role", perm)
		}
		if perm.Allows(Role("")) {
			t.Errorf("%q must deny empty role", perm)
		}
	}
}

func TestPermissionFlagsCoversAllPermissions(t *testing.T) {
	flags := PermissionFlags(RoleApplicant)
	if len(flags) != len(AllPermissions) {
		t.Fatalf("expected %d flags, got %d", len(AllPermissions), len(flags))
	}
	if !flags["submit-portfolios"] {
		t.Error("applicant should hold submit-portfolios")
	}
	if flags["manage-users"] {
		t.Error("applicant must not hold manage-users")
	}
}

func TestRoleMetadata(t *testing.T) {
	for _, role := range AllRoles {
		if !role.Valid() {
			t.Errorf("role %q should be valid", role)
		}
		if role.Label() == "Unknown" {
			t.Errorf("role %q has no label", role)
		}
		if role.Color() == "" {
			t.Errorf("role %q has no color", role)
		}
	}
	if Role("ghost").Valid() {
		t.Error("unknown role must not be valid")
	}
	if !RoleSuperAdmin.IsAdminRole() || !RoleAdmin.IsAdminRole() {
		t.Error("super_admin and admin are admin roles")
	}
	if RoleEvaluator.IsAdminRole() || RoleApplicant.IsAdminRole() {
		t.Error("evaluator and applicant are not admin roles")
	}
}
