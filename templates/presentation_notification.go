package templates

import (
	"eda-booking-service/internal/domain/entity"
)

// Notification titles for presentation events that are not plain status
// transitions (those come from PresentationStatus.Title).
const (
	TitleNewPresentation          = "🆕 Nova Solicitação de Demonstração"
	TitleAdminCreatedPresentation = "➕ Nova Apresentação Criada"
	TitleUpdatedPresentation      = "✏️ Apresentação Atualizada"
)

const dateLayout = "02/01/2006"

// PresentationNotification builds the webhook payload describing a
// presentation event. The body summarizes every record field.
func PresentationNotification(title string, p *entity.Presentation) *entity.Notification {
	return &entity.Notification{
		Title:      title,
		RecordType: entity.RecordPresentation,
		RecordID:   p.ID,
		Fields: []entity.NotificationField{
			{Name: "Cidade", Value: p.City, Inline: true},
			{Name: "Data", Value: p.Date.Format(dateLayout), Inline: true},
			{Name: "Horário", Value: p.Time, Inline: true},
			{Name: "Email", Value: p.Email, Inline: true},
			{Name: "Discord ID", Value: p.DiscordID, Inline: true},
			{Name: "Status", Value: p.Status.Label(), Inline: true},
			{Name: "Descrição", Value: p.Description},
		},
	}
}

// PresentationStatusNotification builds the payload for a status transition.
// The snapshot carries the pre-update field values; only the status is
// replaced by the transition target.
func PresentationStatusNotification(p *entity.Presentation, newStatus entity.PresentationStatus) *entity.Notification {
	updated := *p
	updated.Status = newStatus
	return PresentationNotification(newStatus.Title(), &updated)
}
