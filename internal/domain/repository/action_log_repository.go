package repository

import (
	"context"

	"eda-booking-service/internal/domain/entity"
)

// ActionLogRepository appends workflow mutations to the audit trail.
type ActionLogRepository interface {
	Append(ctx context.Context, log *entity.ActionLog) error
	// FindByRecord returns the trail for one record, oldest first.
	FindByRecord(ctx context.Context, recordType entity.RecordType, recordID string) ([]*entity.ActionLog, error)
}
