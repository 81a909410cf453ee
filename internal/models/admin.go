package models

import "time"

// Admin roles.
const (
	AdminRoleAdmin      = "admin"
	AdminRoleSuperAdmin = "super_admin"
	AdminRoleModerator  = "moderator"
)

// AdminUser grants an identity an administrative role. Postgres-only: the
// managed backend has no admin-role table and falls back to a configured
// allow-list of emails.
type AdminUser struct {
	ID         uint      `gorm:"primarykey"`
	AuthUserID string    `gorm:"type:uuid;uniqueIndex;not null"`
	Username   string    `gorm:"not null"`
	Email      string    `gorm:"uniqueIndex;not null"`
	Role       string    `gorm:"not null;default:'admin'"`
	Active     bool      `gorm:"default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (AdminUser) TableName() string { return "admin_users" }

// ValidAdminRole reports whether role is one of the recognised admin roles.
func ValidAdminRole(role string) bool {
	switch role {
	case AdminRoleAdmin, AdminRoleSuperAdmin, AdminRoleModerator:
		return true
	}
	return false
}
