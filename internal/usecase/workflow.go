package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"eda-booking-service/internal/domain/entity"
	"eda-booking-service/internal/domain/repository"
	"eda-booking-service/pkg/logger"
	"eda-booking-service/pkg/metrics"
	"eda-booking-service/templates"
)

// Actor labels recorded in the audit trail.
const (
	ActorPublic = "public"
	ActorAdmin  = "admin"
)

const minDescriptionLength = 10

// Workflow validates and applies record mutations, then emits best-effort
// notifications. The status update is the operation of record; notification
// and audit failures are logged and never surfaced to the caller.
type Workflow struct {
	presentations repository.PresentationRepository
	enlistments   repository.EnlistmentRepository
	notifier      repository.Notifier
	actionLog     repository.ActionLogRepository
	metrics       *metrics.Metrics
	logger        logger.Logger
}

// NewWorkflow creates a new workflow engine. actionLog and m may be nil.
func NewWorkflow(
	presentations repository.PresentationRepository,
	enlistments repository.EnlistmentRepository,
	notifier repository.Notifier,
	actionLog repository.ActionLogRepository,
	m *metrics.Metrics,
	logger logger.Logger,
) *Workflow {
	return &Workflow{
		presentations: presentations,
		enlistments:   enlistments,
		notifier:      notifier,
		actionLog:     actionLog,
		metrics:       m,
		logger:        logger,
	}
}

// PresentationInput carries a presentation create request.
type PresentationInput struct {
	City        string
	Email       string
	Date        time.Time
	Time        string
	Description string
	DiscordID   string
	// Status is honored only for admin-created records; submitter-created
	// records are always forced to pending.
	Status entity.PresentationStatus
}

// EnlistmentInput carries an enlistment create request.
type EnlistmentInput struct {
	FirstName         string
	LastName          string
	Email             string
	DiscordNick       string
	Motivation        string
	AviationKnowledge string
	Age               string
	SimFlightExp      string
	KnowsSquadron     string
	Shifts            []string
}

// TransitionStatus overwrites the status field of one record and notifies
// the chat webhook about the transition. Any status in the record type's
// enum may be applied regardless of the current one, including a no-op
// re-application.
func (w *Workflow) TransitionStatus(ctx context.Context, recordType entity.RecordType, id string, newStatus string) error {
	defer w.observe(time.Now())

	switch recordType {
	case entity.RecordPresentation:
		return w.transitionPresentation(ctx, id, entity.PresentationStatus(newStatus))
	case entity.RecordEnlistment:
		return w.transitionEnlistment(ctx, id, entity.EnlistmentStatus(newStatus))
	default:
		return entity.NewValidationError("recordType", "unknown record type")
	}
}

func (w *Workflow) transitionPresentation(ctx context.Context, id string, status entity.PresentationStatus) error {
	if !status.Valid() {
		return entity.NewValidationError("status", "not a presentation status")
	}

	// Re-read before the partial update so the notification body carries
	// the complete record, not just the changed field.
	p, err := w.presentations.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := w.presentations.UpdateStatus(ctx, id, status); err != nil {
		w.countError("transition_presentation")
		return err
	}

	notified := w.notify(ctx, templates.PresentationStatusNotification(p, status))
	w.recordAction(ctx, &entity.ActionLog{
		RecordType: entity.RecordPresentation,
		RecordID:   id,
		Action:     entity.ActionStatusChange,
		FromStatus: string(p.Status),
		ToStatus:   string(status),
		Actor:      ActorAdmin,
		Notified:   notified,
	})

	if w.metrics != nil {
		w.metrics.StatusTransitions.WithLabelValues(string(entity.RecordPresentation), string(status)).Inc()
	}

	w.logger.Info("Presentation status updated",
		"id", id,
		"from", p.Status,
		"to", status)

	return nil
}

func (w *Workflow) transitionEnlistment(ctx context.Context, id string, status entity.EnlistmentStatus) error {
	if !status.Valid() {
		return entity.NewValidationError("status", "not an enlistment status")
	}

	e, err := w.enlistments.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := w.enlistments.UpdateStatus(ctx, id, status); err != nil {
		w.countError("transition_enlistment")
		return err
	}

	notified := w.notify(ctx, templates.EnlistmentStatusNotification(e, status))
	w.recordAction(ctx, &entity.ActionLog{
		RecordType: entity.RecordEnlistment,
		RecordID:   id,
		Action:     entity.ActionStatusChange,
		FromStatus: string(e.Status),
		ToStatus:   string(status),
		Actor:      ActorAdmin,
		Notified:   notified,
	})

	if w.metrics != nil {
		w.metrics.StatusTransitions.WithLabelValues(string(entity.RecordEnlistment), string(status)).Inc()
	}

	w.logger.Info("Enlistment status updated",
		"id", id,
		"from", e.Status,
		"to", status)

	return nil
}

// CreatePresentation validates and persists a new booking request.
// Submitter-created records are forced to pending; admin-created records
// may start in any valid status and use sentinel contact values.
func (w *Workflow) CreatePresentation(ctx context.Context, in PresentationInput, adminCreated bool) (*entity.Presentation, error) {
	defer w.observe(time.Now())

	if err := validatePresentationInput(in, adminCreated); err != nil {
		return nil, err
	}

	p := &entity.Presentation{
		City:        in.City,
		Email:       in.Email,
		Date:        in.Date,
		Time:        in.Time,
		Description: in.Description,
		DiscordID:   in.DiscordID,
		Status:      entity.PresentationPending,
		CreatedAt:   time.Now(),
	}

	title := templates.TitleNewPresentation
	if adminCreated {
		p.Email = entity.AdminCreatedEmail
		p.DiscordID = entity.AdminCreatedDiscordID
		if in.Status != "" {
			p.Status = in.Status
		}
		title = templates.TitleAdminCreatedPresentation
	}

	if err := w.presentations.Insert(ctx, p); err != nil {
		w.countError("create_presentation")
		return nil, err
	}

	notified := w.notify(ctx, templates.PresentationNotification(title, p))
	w.recordAction(ctx, &entity.ActionLog{
		RecordType: entity.RecordPresentation,
		RecordID:   p.ID,
		Action:     entity.ActionCreate,
		ToStatus:   string(p.Status),
		Actor:      actorFor(adminCreated),
		Notified:   notified,
	})

	if w.metrics != nil {
		w.metrics.RecordsCreated.WithLabelValues(string(entity.RecordPresentation)).Inc()
	}

	w.logger.Info("Presentation created", "id", p.ID, "city", p.City, "status", p.Status)

	return p, nil
}

// CreateEnlistment validates and persists a new application. Status is
// always pending; the submitter IP comes from the request context.
func (w *Workflow) CreateEnlistment(ctx context.Context, in EnlistmentInput, submitterIP string) (*entity.Enlistment, error) {
	defer w.observe(time.Now())

	if err := validateEnlistmentInput(in); err != nil {
		return nil, err
	}

	e := &entity.Enlistment{
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Email:             in.Email,
		DiscordNick:       in.DiscordNick,
		Motivation:        in.Motivation,
		AviationKnowledge: in.AviationKnowledge,
		Age:               in.Age,
		SimFlightExp:      in.SimFlightExp,
		KnowsSquadron:     in.KnowsSquadron,
		Shifts:            in.Shifts,
		SubmitterIP:       submitterIP,
		Status:            entity.EnlistmentPending,
		CreatedAt:         time.Now(),
	}

	if err := w.enlistments.Insert(ctx, e); err != nil {
		w.countError("create_enlistment")
		return nil, err
	}

	notified := w.notify(ctx, templates.EnlistmentNotification(templates.TitleNewEnlistment, e))
	w.recordAction(ctx, &entity.ActionLog{
		RecordType: entity.RecordEnlistment,
		RecordID:   e.ID,
		Action:     entity.ActionCreate,
		ToStatus:   string(e.Status),
		Actor:      ActorPublic,
		Notified:   notified,
	})

	if w.metrics != nil {
		w.metrics.RecordsCreated.WithLabelValues(string(entity.RecordEnlistment)).Inc()
	}

	w.logger.Info("Enlistment created", "id", e.ID, "discord", e.DiscordNick)

	return e, nil
}

// EditPresentation replaces the editable fields of a booking request in one
// write. All fields are required; nothing is written when validation fails.
func (w *Workflow) EditPresentation(ctx context.Context, id string, edit entity.PresentationEdit) error {
	defer w.observe(time.Now())

	if edit.City == "" {
		return entity.NewValidationError("city", "required")
	}
	if edit.Date.IsZero() {
		return entity.NewValidationError("date", "required")
	}
	if edit.Time == "" {
		return entity.NewValidationError("time", "required")
	}
	if edit.Description == "" {
		return entity.NewValidationError("description", "required")
	}
	if !edit.Status.Valid() {
		return entity.NewValidationError("status", "not a presentation status")
	}

	p, err := w.presentations.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := w.presentations.Update(ctx, id, edit); err != nil {
		w.countError("edit_presentation")
		return err
	}

	updated := *p
	updated.City = edit.City
	updated.Date = edit.Date
	updated.Time = edit.Time
	updated.Description = edit.Description
	updated.Status = edit.Status

	notified := w.notify(ctx, templates.PresentationNotification(templates.TitleUpdatedPresentation, &updated))
	w.recordAction(ctx, &entity.ActionLog{
		RecordType: entity.RecordPresentation,
		RecordID:   id,
		Action:     entity.ActionEdit,
		FromStatus: string(p.Status),
		ToStatus:   string(edit.Status),
		Actor:      ActorAdmin,
		Notified:   notified,
	})

	w.logger.Info("Presentation edited", "id", id, "city", edit.City)

	return nil
}

// DeleteRecord removes one record permanently. No notification is sent on
// delete; the audit trail still records it.
func (w *Workflow) DeleteRecord(ctx context.Context, recordType entity.RecordType, id string) error {
	defer w.observe(time.Now())

	var err error
	switch recordType {
	case entity.RecordPresentation:
		err = w.presentations.Delete(ctx, id)
	case entity.RecordEnlistment:
		err = w.enlistments.Delete(ctx, id)
	default:
		return entity.NewValidationError("recordType", "unknown record type")
	}
	if err != nil {
		return err
	}

	w.recordAction(ctx, &entity.ActionLog{
		RecordType: recordType,
		RecordID:   id,
		Action:     entity.ActionDelete,
		Actor:      ActorAdmin,
	})

	if w.metrics != nil {
		w.metrics.RecordsDeleted.WithLabelValues(string(recordType)).Inc()
	}

	w.logger.Info("Record deleted", "recordType", recordType, "id", id)

	return nil
}

// notify delivers a notification without ever failing the caller. Panics
// from the notifier are contained here.
func (w *Workflow) notify(ctx context.Context, n *entity.Notification) (sent bool) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("Notifier panicked", "title", n.Title, "panic", r)
			sent = false
		}
		if w.metrics != nil {
			if sent {
				w.metrics.NotificationsSent.Inc()
			} else {
				w.metrics.NotificationFailures.Inc()
			}
		}
		if !sent {
			w.logger.Warn("Notification not delivered",
				"title", n.Title,
				"recordType", n.RecordType,
				"recordId", n.RecordID)
		}
	}()

	return w.notifier.Send(ctx, n)
}

func (w *Workflow) recordAction(ctx context.Context, log *entity.ActionLog) {
	if w.actionLog == nil {
		return
	}

	log.CreatedAt = time.Now()
	if err := w.actionLog.Append(ctx, log); err != nil {
		w.logger.Error("Failed to append workflow action",
			"recordType", log.RecordType,
			"recordId", log.RecordID,
			"action", log.Action,
			"error", err)
	}
}

func (w *Workflow) observe(start time.Time) {
	if w.metrics != nil {
		w.metrics.OperationTime.Observe(time.Since(start).Seconds())
	}
}

func (w *Workflow) countError(operation string) {
	if w.metrics != nil {
		w.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	}
}

func actorFor(adminCreated bool) string {
	if adminCreated {
		return ActorAdmin
	}
	return ActorPublic
}

func validatePresentationInput(in PresentationInput, adminCreated bool) error {
	if in.City == "" {
		return entity.NewValidationError("city", "required")
	}
	if in.Date.IsZero() {
		return entity.NewValidationError("date", "required")
	}
	if in.Time == "" {
		return entity.NewValidationError("time", "required")
	}
	if len(strings.TrimSpace(in.Description)) < minDescriptionLength {
		return entity.NewValidationError("description", "must be at least 10 characters")
	}
	if adminCreated {
		if in.Status != "" && !in.Status.Valid() {
			return entity.NewValidationError("status", "not a presentation status")
		}
		return nil
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return entity.NewValidationError("email", "malformed address")
	}
	if in.DiscordID == "" {
		return entity.NewValidationError("discordId", "required")
	}
	return nil
}

func validateEnlistmentInput(in EnlistmentInput) error {
	required := []struct {
		field string
		value string
	}{
		{"nome", in.FirstName},
		{"sobrenome", in.LastName},
		{"discordNick", in.DiscordNick},
		{"motivoEntrada", in.Motivation},
		{"conhecimentoAviao", in.AviationKnowledge},
		{"idade", in.Age},
		{"vooFivem", in.SimFlightExp},
		{"conheceEsquadrilha", in.KnowsSquadron},
	}
	for _, f := range required {
		if f.value == "" {
			return entity.NewValidationError(f.field, "required")
		}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return entity.NewValidationError("email", "malformed address")
	}
	if len(in.Shifts) == 0 {
		return entity.NewValidationError("turno", "at least one shift is required")
	}
	return nil
}
