package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-crm/internal/models"
)

type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Write(ctx context.Context, entry models.AuditLog) error {
	return s.db.WithContext(ctx).Create(&entry).Error
}

func (s *GormSink) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	base := s.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("business_id = ?", q.BusinessID)

	if q.Action != "" {
		base = base.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		base = base.Where("entity = ?", q.Entity)
	}
	if !q.From.IsZero() {
		base = base.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		base = base.Where("created_at < ?", q.To)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := base.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
