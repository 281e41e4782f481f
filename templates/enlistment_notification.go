package templates

import (
	"fmt"
	"strings"

	"eda-booking-service/internal/domain/entity"
)

// TitleNewEnlistment is the notification title for a new application.
const TitleNewEnlistment = "🆕 Novo Alistamento Recebido"

// EnlistmentNotification builds the webhook payload describing an
// enlistment event. The description carries the biographical summary;
// the shift set is rendered as a comma-separated list.
func EnlistmentNotification(title string, e *entity.Enlistment) *entity.Notification {
	summary := fmt.Sprintf(
		"Nome: %s %s\nEmail: %s\nIdade: %s\nMotivo: %s\nConhecimento: %s\nVoo FIVEM: %s\nConhece Esquadrilha: %s\nTurno: %s\nStatus: %s",
		e.FirstName, e.LastName,
		e.Email,
		e.Age,
		e.Motivation,
		knowledgeLabel(e.AviationKnowledge),
		yesNoLabel(e.SimFlightExp),
		yesNoLabel(e.KnowsSquadron),
		strings.Join(e.Shifts, ", "),
		e.Status.Label(),
	)

	return &entity.Notification{
		Title:       title,
		Description: summary,
		RecordType:  entity.RecordEnlistment,
		RecordID:    e.ID,
		Fields: []entity.NotificationField{
			{Name: "Discord", Value: e.DiscordNick, Inline: true},
			{Name: "Email", Value: e.Email, Inline: true},
		},
	}
}

// EnlistmentStatusNotification builds the payload for a status transition.
func EnlistmentStatusNotification(e *entity.Enlistment, newStatus entity.EnlistmentStatus) *entity.Notification {
	updated := *e
	updated.Status = newStatus
	return EnlistmentNotification(newStatus.Title(), &updated)
}

func knowledgeLabel(v string) string {
	if v == entity.KnowledgeExperienced {
		return "Sim, tenho conhecimento"
	}
	return "Não tenho conhecimento, mas estou disposto a aprender"
}

func yesNoLabel(v string) string {
	if v == "sim" {
		return "Sim"
	}
	return "Não"
}
