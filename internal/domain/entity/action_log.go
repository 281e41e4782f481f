package entity

import (
	"time"
)

// ActionKind labels a workflow mutation in the audit trail.
type ActionKind string

const (
	ActionCreate       ActionKind = "create"
	ActionStatusChange ActionKind = "status_change"
	ActionEdit         ActionKind = "edit"
	ActionDelete       ActionKind = "delete"
)

// ActionLog is one row of the workflow audit trail. Appended best-effort
// after every mutation; failures are logged and never fail the operation.
type ActionLog struct {
	ID         uint
	RecordType RecordType
	RecordID   string
	Action     ActionKind
	FromStatus string
	ToStatus   string
	Actor      string
	Notified   bool
	CreatedAt  time.Time
}
