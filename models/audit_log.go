package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"column:user_id;index" json:"user_id"`
	Action       string         `gorm:"size:64;index" json:"action"`
	ResourceType string         `gorm:"size:64;index" json:"resource_type"`
	ResourceID   uint           `gorm:"index" json:"resource_id"`
	Before       datatypes.JSON `gorm:"column:before_json" json:"before,omitempty"`
	After        datatypes.JSON `gorm:"column:after_json" json:"after,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
