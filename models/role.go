package models

import "time"

// Role mirrors one entry of the permission matrix so it can be listed and edited.
type Role struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"size:100;uniqueIndex" json:"name"`
	Description string           `gorm:"size:255" json:"description"`
	Rank        int              `gorm:"not null;default:0" json:"rank"`
	Permissions []RolePermission `gorm:"foreignKey:RoleID" json:"permissions"`
	CreatedAt   time.Time        `json:"created_at"`
}
