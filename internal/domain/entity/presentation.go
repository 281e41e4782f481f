package entity

import (
	"time"
)

// PresentationStatus is the triage state of a presentation request.
type PresentationStatus string

const (
	PresentationPending     PresentationStatus = "pending"
	PresentationApproved    PresentationStatus = "approved"
	PresentationRejected    PresentationStatus = "rejected"
	PresentationRescheduled PresentationStatus = "rescheduled"
	PresentationCanceled    PresentationStatus = "canceled"
)

// Valid reports whether s is a member of the presentation status enum.
func (s PresentationStatus) Valid() bool {
	switch s {
	case PresentationPending, PresentationApproved, PresentationRejected,
		PresentationRescheduled, PresentationCanceled:
		return true
	}
	return false
}

// Title returns the notification title for a transition into s.
func (s PresentationStatus) Title() string {
	switch s {
	case PresentationApproved:
		return "✅ Apresentação Aprovada"
	case PresentationRejected:
		return "❌ Apresentação Rejeitada"
	case PresentationRescheduled:
		return "🔄 Apresentação Reagendada"
	case PresentationCanceled:
		return "🚫 Apresentação Cancelada"
	default:
		return "🔔 Status da Apresentação Atualizado"
	}
}

// Label returns the human-readable status text used in notification bodies.
func (s PresentationStatus) Label() string {
	switch s {
	case PresentationApproved:
		return "Aprovada"
	case PresentationRejected:
		return "Rejeitada"
	case PresentationRescheduled:
		return "Reagendada"
	case PresentationCanceled:
		return "Cancelada"
	default:
		return "Pendente"
	}
}

// Sentinel contact values for records created from the admin console.
const (
	AdminCreatedEmail     = "criado-pelo-admin@eda.com"
	AdminCreatedDiscordID = "Admin"
)

// Presentation is a booking request for an aerial demonstration.
type Presentation struct {
	ID          string             `bson:"_id,omitempty" json:"id"`
	City        string             `bson:"city" json:"city"`
	Email       string             `bson:"email" json:"email"`
	Date        time.Time          `bson:"date" json:"date"`
	Time        string             `bson:"time" json:"time"`
	Description string             `bson:"description" json:"description"`
	DiscordID   string             `bson:"discordId" json:"discordId"`
	Status      PresentationStatus `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// PresentationEdit carries the full-field admin edit. All fields are
// required; status changes ride along with the edit in a single write.
type PresentationEdit struct {
	City        string
	Date        time.Time
	Time        string
	Description string
	Status      PresentationStatus
}
