package models

import (
	"time"
)

// Role is the single role assigned to every user account. Roles are set by
// administrators only; there is no self-service role change.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEvaluator  Role = "evaluator"
	RoleApplicant  Role = "applicant"
)

// AllRoles lists every role the system accepts, in display order.
var AllRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleEvaluator, RoleApplicant}

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEvaluator, RoleApplicant:
		return true
	}
	return false
}

func (r Role) Label() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleAdmin:
		return "Admin"
	case RoleEvaluator:
		return "Evaluator"
	case RoleApplicant:
		return "Applicant"
	}
	return "Unknown"
}

func (r Role) Color() string {
	switch r {
	case RoleSuperAdmin:
		return "red"
	case RoleAdmin:
		return "orange"
	case RoleEvaluator:
		return "blue"
	case RoleApplicant:
		return "green"
	}
	return "gray"
}

// IsAdminRole reports whether the role carries administrative access.
// Only super_admin and admin qualify; there is no wider hierarchy.
func (r Role) IsAdminRole() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

type User struct {
	UserID    int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	FirstName string     `gorm:"column:first_name" json:"first_name"`
	LastName  string     `gorm:"column:last_name" json:"last_name"`
	Email     string     `gorm:"column:email;unique" json:"email"`
	Password  string     `gorm:"column:password" json:"-"`
	Role      Role       `gorm:"column:role" json:"role"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
