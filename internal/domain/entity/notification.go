package entity

// RecordType identifies which collection a workflow operation targets.
type RecordType string

const (
	RecordPresentation RecordType = "presentation"
	RecordEnlistment   RecordType = "enlistment"
)

// NotificationField is one labelled line of a notification body.
type NotificationField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Notification is the outbound webhook payload describing a workflow event.
// Delivery is fire-and-forget; the workflow never blocks on it.
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	RecordType  RecordType          `json:"recordType"`
	RecordID    string              `json:"recordId"`
	Fields      []NotificationField `json:"fields,omitempty"`
}
