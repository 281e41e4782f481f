package repository

import (
	"context"
	"time"

	"eda-booking-service/internal/domain/entity"
	"eda-booking-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormActionLogRepository implements the ActionLogRepository interface
type GormActionLogRepository struct {
	db *gorm.DB
}

// WorkflowAction GORM model for database mapping
type WorkflowAction struct {
	ID         uint   `gorm:"primaryKey"`
	RecordType string `gorm:"column:record_type;index:idx_workflow_actions_record"`
	RecordID   string `gorm:"column:record_id;index:idx_workflow_actions_record"`
	Action     string `gorm:"column:action"`
	FromStatus string `gorm:"column:from_status"`
	ToStatus   string `gorm:"column:to_status"`
	Actor      string `gorm:"column:actor"`
	Notified   bool   `gorm:"column:notified"`
	CreatedAt  time.Time
}

// TableName overrides the default table name
func (WorkflowAction) TableName() string {
	return "t_workflow_actions"
}

// NewGormActionLogRepository creates a new GORM action log repository
func NewGormActionLogRepository(db *gorm.DB) repository.ActionLogRepository {
	db.AutoMigrate(&WorkflowAction{})

	return &GormActionLogRepository{
		db: db,
	}
}

// Append writes one audit row
func (r *GormActionLogRepository) Append(ctx context.Context, log *entity.ActionLog) error {
	row := WorkflowAction{
		RecordType: string(log.RecordType),
		RecordID:   log.RecordID,
		Action:     string(log.Action),
		FromStatus: log.FromStatus,
		ToStatus:   log.ToStatus,
		Actor:      log.Actor,
		Notified:   log.Notified,
		CreatedAt:  log.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		return result.Error
	}

	log.ID = row.ID
	return nil
}

// FindByRecord returns the trail for one record, oldest first
func (r *GormActionLogRepository) FindByRecord(ctx context.Context, recordType entity.RecordType, recordID string) ([]*entity.ActionLog, error) {
	var rows []WorkflowAction
	result := r.db.WithContext(ctx).
		Where("record_type = ? AND record_id = ?", string(recordType), recordID).
		Order("created_at asc").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	logs := make([]*entity.ActionLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, &entity.ActionLog{
			ID:         row.ID,
			RecordType: entity.RecordType(row.RecordType),
			RecordID:   row.RecordID,
			Action:     entity.ActionKind(row.Action),
			FromStatus: row.FromStatus,
			ToStatus:   row.ToStatus,
			Actor:      row.Actor,
			Notified:   row.Notified,
			CreatedAt:  row.CreatedAt,
		})
	}
	return logs, nil
}
