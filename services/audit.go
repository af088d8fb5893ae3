package services

import (
	"encoding/json"
	"fmt"

	"hotel-backoffice/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func snapshot(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// Audit records a change inside the caller's transaction.
func Audit(tx *gorm.DB, actor Actor, action, resourceType string, resourceID uint, before, after interface{}) error {
	entry := models.AuditLog{
		UserID:       actor.UserID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Before:       snapshot(before),
		After:        snapshot(after),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit %s: %w", action, err)
	}
	return nil
}

// AuditService exposes the audit trail to administrators.
type AuditService struct {
	DB *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{DB: db}
}

func (s *AuditService) List(resourceType string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := s.DB.Order("id DESC").Limit(limit)
	if resourceType != "" {
		q = q.Where("resource_type = ?", resourceType)
	}
	var logs []models.AuditLog
	err := q.Find(&logs).Error
	return logs, err
}
