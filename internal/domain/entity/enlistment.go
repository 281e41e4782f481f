package entity

import (
	"time"
)

// EnlistmentStatus is the triage state of an enlistment application.
type EnlistmentStatus string

const (
	EnlistmentPending    EnlistmentStatus = "pending"
	EnlistmentInProgress EnlistmentStatus = "in_progress"
	EnlistmentApproved   EnlistmentStatus = "approved"
	EnlistmentRejected   EnlistmentStatus = "rejected"
)

// Valid reports whether s is a member of the enlistment status enum.
func (s EnlistmentStatus) Valid() bool {
	switch s {
	case EnlistmentPending, EnlistmentInProgress, EnlistmentApproved, EnlistmentRejected:
		return true
	}
	return false
}

// Title returns the notification title for a transition into s.
func (s EnlistmentStatus) Title() string {
	switch s {
	case EnlistmentApproved:
		return "✅ Alistamento Aprovado"
	case EnlistmentRejected:
		return "❌ Alistamento Rejeitado"
	case EnlistmentInProgress:
		return "🔄 Alistamento Em Análise"
	default:
		return "🔔 Status do Alistamento Atualizado"
	}
}

// Label returns the human-readable status text used in notification bodies.
func (s EnlistmentStatus) Label() string {
	switch s {
	case EnlistmentApproved:
		return "Aprovado"
	case EnlistmentRejected:
		return "Rejeitado"
	case EnlistmentInProgress:
		return "Em Análise"
	default:
		return "Pendente"
	}
}

// Enlistment is an application to join the squadron as a pilot.
// Field keys follow the submission form contract.
type Enlistment struct {
	ID                string           `bson:"_id,omitempty" json:"id"`
	FirstName         string           `bson:"nome" json:"nome"`
	LastName          string           `bson:"sobrenome" json:"sobrenome"`
	Email             string           `bson:"email" json:"email"`
	DiscordNick       string           `bson:"discordNick" json:"discordNick"`
	Motivation        string           `bson:"motivoEntrada" json:"motivoEntrada"`
	AviationKnowledge string           `bson:"conhecimentoAviao" json:"conhecimentoAviao"`
	Age               string           `bson:"idade" json:"idade"`
	SimFlightExp      string           `bson:"vooFivem" json:"vooFivem"`
	KnowsSquadron     string           `bson:"conheceEsquadrilha" json:"conheceEsquadrilha"`
	Shifts            []string         `bson:"turno" json:"turno"`
	SubmitterIP       string           `bson:"userIP" json:"userIP"`
	Status            EnlistmentStatus `bson:"status" json:"status"`
	CreatedAt         time.Time        `bson:"createdAt" json:"createdAt"`
}

// AviationKnowledge enum values from the public form.
const (
	KnowledgeExperienced    = "com_conhecimento"
	KnowledgeWillingToLearn = "sem_conhecimento"
)
