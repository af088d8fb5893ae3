package models

// RolePermission grants one permission key (e.g. "reservation.create") to a role.
type RolePermission struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	RoleID     uint   `gorm:"not null;index:idx_role_permission,unique" json:"role_id"`
	Permission string `gorm:"size:100;not null;index:idx_role_permission,unique" json:"permission"`
}
