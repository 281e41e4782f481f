package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"eda-booking-service/internal/domain/entity"
	"eda-booking-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresentationRepo struct {
	records   map[string]*entity.Presentation
	failWrite bool
}

func newFakePresentationRepo() *fakePresentationRepo {
	return &fakePresentationRepo{records: map[string]*entity.Presentation{}}
}

func (r *fakePresentationRepo) Insert(ctx context.Context, p *entity.Presentation) error {
	if r.failWrite {
		return &entity.StoreWriteError{Op: "insert presentation", Err: errors.New("write rejected")}
	}
	if p.ID == "" {
		p.ID = "p-1"
	}
	copied := *p
	r.records[p.ID] = &copied
	return nil
}

func (r *fakePresentationRepo) FindByID(ctx context.Context, id string) (*entity.Presentation, error) {
	p, ok := r.records[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePresentationRepo) FindAll(ctx context.Context) ([]*entity.Presentation, error) {
	all := []*entity.Presentation{}
	for _, p := range r.records {
		copied := *p
		all = append(all, &copied)
	}
	return all, nil
}

func (r *fakePresentationRepo) FindUpcoming(ctx context.Context, from time.Time) ([]*entity.Presentation, error) {
	return nil, nil
}

func (r *fakePresentationRepo) UpdateStatus(ctx context.Context, id string, status entity.PresentationStatus) error {
	if r.failWrite {
		return &entity.StoreWriteError{Op: "update presentation status", Err: errors.New("write rejected")}
	}
	p, ok := r.records[id]
	if !ok {
		return entity.ErrNotFound
	}
	p.Status = status
	return nil
}

func (r *fakePresentationRepo) Update(ctx context.Context, id string, edit entity.PresentationEdit) error {
	if r.failWrite {
		return &entity.StoreWriteError{Op: "update presentation", Err: errors.New("write rejected")}
	}
	p, ok := r.records[id]
	if !ok {
		return entity.ErrNotFound
	}
	p.City = edit.City
	p.Date = edit.Date
	p.Time = edit.Time
	p.Description = edit.Description
	p.Status = edit.Status
	return nil
}

func (r *fakePresentationRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakePresentationRepo) Watch(ctx context.Context) (<-chan []*entity.Presentation, error) {
	return nil, errors.New("not implemented")
}

type fakeEnlistmentRepo struct {
	records map[string]*entity.Enlistment
}

func newFakeEnlistmentRepo() *fakeEnlistmentRepo {
	return &fakeEnlistmentRepo{records: map[string]*entity.Enlistment{}}
}

func (r *fakeEnlistmentRepo) Insert(ctx context.Context, e *entity.Enlistment) error {
	if e.ID == "" {
		e.ID = "e-1"
	}
	copied := *e
	r.records[e.ID] = &copied
	return nil
}

func (r *fakeEnlistmentRepo) FindByID(ctx context.Context, id string) (*entity.Enlistment, error) {
	e, ok := r.records[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEnlistmentRepo) FindAll(ctx context.Context) ([]*entity.Enlistment, error) {
	all := []*entity.Enlistment{}
	for _, e := range r.records {
		copied := *e
		all = append(all, &copied)
	}
	return all, nil
}

func (r *fakeEnlistmentRepo) UpdateStatus(ctx context.Context, id string, status entity.EnlistmentStatus) error {
	e, ok := r.records[id]
	if !ok {
		return entity.ErrNotFound
	}
	e.Status = status
	return nil
}

func (r *fakeEnlistmentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeEnlistmentRepo) Watch(ctx context.Context) (<-chan []*entity.Enlistment, error) {
	return nil, errors.New("not implemented")
}

type fakeNotifier struct {
	sent      []*entity.Notification
	fail      bool
	panicking bool
}

func (n *fakeNotifier) Send(ctx context.Context, notification *entity.Notification) bool {
	if n.panicking {
		panic("webhook client exploded")
	}
	n.sent = append(n.sent, notification)
	return !n.fail
}

type fakeActionLog struct {
	appended []*entity.ActionLog
}

func (l *fakeActionLog) Append(ctx context.Context, log *entity.ActionLog) error {
	l.appended = append(l.appended, log)
	return nil
}

func (l *fakeActionLog) FindByRecord(ctx context.Context, recordType entity.RecordType, recordID string) ([]*entity.ActionLog, error) {
	return l.appended, nil
}

func newTestWorkflow(p *fakePresentationRepo, e *fakeEnlistmentRepo, n *fakeNotifier, a *fakeActionLog) *Workflow {
	return NewWorkflow(p, e, n, a, nil, logger.NewNop())
}

func seedPresentation(r *fakePresentationRepo) *entity.Presentation {
	p := &entity.Presentation{
		ID:          "p-42",
		City:        "Curitiba",
		Email:       "contato@example.com",
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:        "14:00",
		Description: "Air show for festival",
		DiscordID:   "piloto#123",
		Status:      entity.PresentationPending,
		CreatedAt:   time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	r.records[p.ID] = p
	return p
}

func seedEnlistment(r *fakeEnlistmentRepo) *entity.Enlistment {
	e := &entity.Enlistment{
		ID:                "e-7",
		FirstName:         "Ana",
		LastName:          "Souza",
		Email:             "ana@example.com",
		DiscordNick:       "ana#001",
		Motivation:        "Quero voar em formação",
		AviationKnowledge: entity.KnowledgeExperienced,
		Age:               "21",
		SimFlightExp:      "sim",
		KnowsSquadron:     "nao",
		Shifts:            []string{"noite"},
		SubmitterIP:       "203.0.113.9",
		Status:            entity.EnlistmentPending,
		CreatedAt:         time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC),
	}
	r.records[e.ID] = e
	return e
}

func TestTransitionStatusUpdatesOnlyStatus(t *testing.T) {
	presRepo := newFakePresentationRepo()
	notifier := &fakeNotifier{}
	w := newTestWorkflow(presRepo, newFakeEnlistmentRepo(), notifier, &fakeActionLog{})

	before := *seedPresentation(presRepo)

	err := w.TransitionStatus(context.Background(), entity.RecordPresentation, "p-42", "approved")
	require.NoError(t, err)

	after := presRepo.records["p-42"]
	assert.Equal(t, entity.PresentationApproved, after.Status)

	// Every other field is untouched
	assert.Equal(t, before.City, after.City)
	assert.Equal(t, before.Email, after.Email)
	assert.Equal(t, before.Date, after.Date)
	assert.Equal(t, before.Time, after.Time)
	assert.Equal(t, before.Description, after.Description)
	assert.Equal(t, before.DiscordID, after.DiscordID)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "✅ Apresentação Aprovada", notifier.sent[0].Title)
}

func TestTransitionStatusTitles(t *testing.T) {
	tests := []struct {
		status string
		title  string
	}{
		{"approved", "✅ Apresentação Aprovada"},
		{"rejected", "❌ Apresentação Rejeitada"},
		{"rescheduled", "🔄 Apresentação Reagendada"},
		{"canceled", "🚫 Apresentação Cancelada"},
		{"pending", "🔔 Status da Apresentação Atualizado"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			presRepo := newFakePresentationRepo()
			notifier := &fakeNotifier{}
			w := newTestWorkflow(presRepo, newFakeEnlistmentRepo(), notifier, &fakeActionLog{})
			seedPresentation(presRepo)

			err := w.TransitionStatus(context.Background(), entity.RecordPresentation, "p-42", tt.status)
			require.NoError(t, err)
			require.Len(t, notifier.sent, 1)
			assert.Equal(t, tt.title, notifier.sent[0].Title)
		})
	}
}

func TestTransitionStatusRejectsUnknownStatus(t *testing.T) {
	presRepo := newFakePresentationRepo()
	notifier := &fakeNotifier{}
	w := newTestWorkflow(presRepo, newFakeEnlistmentRepo(), notifier, &fakeActionLog{})
	seedPresentation(presRepo)

	err := w.TransitionStatus(context.Background(), entity.RecordPresentation, "p-42", "archived")

	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, entity.PresentationPending, presRepo.records["p-42"].Status)
	assert.Empty(t, notifier.sent)
}

func TestTransitionStatusNotFound(t *testing.T) {
	presRepo := newFakePresentationRepo()
	notifier := &fakeNotifier{}
	w := newTestWorkflow(presRepo, newFakeEnlistmentRepo(), notifier, &fakeActionLog{})

	err := w.TransitionStatus(context.Background(), entity.RecordPresentation, "missing", "approved")

	require.ErrorIs(t, err, entity.ErrNotFound)
	assert.Empty(t, notifier.sent)
}

func TestTransitionStatusStoreWriteFailure(t *testing.T) {
	presRepo := newFakePresentationRepo()
	notifier := &fakeNotifier{}
	w := newTestWorkflow(presRepo, newFakeEnlistmentRepo(), notifier, &fakeActionLog{})
	seedPresentation(presRepo)
	presRepo.failWrite = true

	err := w.TransitionStatus(context.Background(), entity.RecordPresentation, "p-42", "approved")

	var storeErr *entity.StoreWriteError
	require.ErrorAs(t, err, &storeErr)
	// No notification is attempted when the write fails
	assert.Empty(t, notifier.sent)
}

func TestTransitionStatusIdempotentReapplication(t *testing.T) {
	presRepo := newFakePresentationRepo()
	notifier := &fakeNotifier{}
	w := newTestWorkflow(presRepo, newFakeEnlistmentRepo(), notifier, &fakeActionLog{})
	seedPresentation(presRepo)

	require.NoError(t, w.TransitionStatus(context.Background(), entity.RecordPresentation, "p-42", "approved"))
	stateAfterFirst := *presRepo.records["p-42"]

	require.NoError(t, w.TransitionStatus(context.Background(), entity.RecordPresentation, "p-42", "approved"))
	stateAfterSecond := *presRepo.records["p-42"]

	assert.Equal(t, stateAfterFirst, stateAfterSecond)
	// One notification per invocation, nothing else
	assert.Len(t, notifier.sent, 2)
}

func TestTransitionEnlistmentSurvivesNotifierPanic(t *testing.T) {
	enlRepo := newFakeEnlistmentRepo()
	notifier := &fakeNotifier{panicking: true}
	w := newTestWorkflow(newFakePresentationRepo(), enlRepo, notifier, &fakeActionLog{})
	seedEnlistment(enlRepo)

	err := w.TransitionStatus(context.Background(), entity.RecordEnlistment, "e-7", "rejected")

	require.NoError(t, err)
	assert.Equal(t, entity.EnlistmentRejected, enlRepo.records["e-7"].Status)
}

func TestTransitionStatusNotifierFailureIsSwallowed(t *testing.T) {
	enlRepo := newFakeEnlistmentRepo()
	notifier := &fakeNotifier{fail: true}
	log := &fakeActionLog{}
	w := newTestWorkflow(newFakePresentationRepo(), enlRepo, notifier, log)
	seedEnlistment(enlRepo)

	err := w.TransitionStatus(context.Background(), entity.RecordEnlistment, "e-7", "in_progress")

	require.NoError(t, err)
	assert.Equal(t, entity.EnlistmentInProgress, enlRepo.records["e-7"].Status)
	require.Len(t, log.appended, 1)
	assert.False(t, log.appended[0].Notified)
}

func TestCreatePresentationForcesPendingForPublic(t *testing.T) {
	presRepo := newFakePresentationRepo()
	notifier := &fakeNotifier{}
	w := newTestWorkflow(presRepo, newFakeEnlistmentRepo(), notifier, &fakeActionLog{})

	p, err := w.CreatePresentation(context.Background(), PresentationInput{
		City:        "Curitiba",
		Email:       "festival@example.com",
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:        "14:00",
		Description: "Air show for festival",
		DiscordID:   "organizer#555",
		Status:      entity.PresentationApproved, // must be ignored
	}, false)

	require.NoError(t, err)
	assert.Equal(t, entity.PresentationPending, p.Status)
	assert.WithinDuration(t, time.Now(), p.CreatedAt, time.Second)
	assert.Len(t, presRepo.records, 1)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "🆕 Nova Solicitação de Demonstração", notifier.sent[0].Title)
}

func TestCreatePresentationAdminUsesSentinelContact(t *testing.T) {
	presRepo := newFakePresentationRepo()
	notifier := &fakeNotifier{}
	w := newTestWorkflow(presRepo, newFakeEnlistmentRepo(), notifier, &fakeActionLog{})

	p, err := w.CreatePresentation(context.Background(), PresentationInput{
		City:        "Maringá",
		Date:        time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		Time:        "16:30",
		Description: "Evento oficial da cidade",
		Status:      entity.PresentationApproved,
	}, true)

	require.NoError(t, err)
	assert.Equal(t, entity.PresentationApproved, p.Status)
	assert.Equal(t, entity.AdminCreatedEmail, p.Email)
	assert.Equal(t, entity.AdminCreatedDiscordID, p.DiscordID)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "➕ Nova Apresentação Criada", notifier.sent[0].Title)
}

func TestCreatePresentationValidation(t *testing.T) {
	valid := PresentationInput{
		City:        "Curitiba",
		Email:       "contato@example.com",
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:        "14:00",
		Description: "Air show for festival",
		DiscordID:   "organizer#555",
	}

	tests := []struct {
		name   string
		mutate func(in *PresentationInput)
		field  string
	}{
		{"empty city", func(in *PresentationInput) { in.City = "" }, "city"},
		{"zero date", func(in *PresentationInput) { in.Date = time.Time{} }, "date"},
		{"empty time", func(in *PresentationInput) { in.Time = "" }, "time"},
		{"short description", func(in *PresentationInput) { in.Description = "too short" }, "description"},
		{"bad email", func(in *PresentationInput) { in.Email = "not-an-email" }, "email"},
		{"empty discord id", func(in *PresentationInput) { in.DiscordID = "" }, "discordId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			presRepo := newFakePresentationRepo()
			notifier := &fakeNotifier{}
			w := newTestWorkflow(presRepo, newFakeEnlistmentRepo(), notifier, &fakeActionLog{})

			in := valid
			tt.mutate(&in)

			_, err := w.CreatePresentation(context.Background(), in, false)

			var validationErr *entity.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Empty(t, presRepo.records)
			assert.Empty(t, notifier.sent)
		})
	}
}

func TestCreateEnlistmentCapturesIPAndForcesPending(t *testing.T) {
	enlRepo := newFakeEnlistmentRepo()
	notifier := &fakeNotifier{}
	w := newTestWorkflow(newFakePresentationRepo(), enlRepo, notifier, &fakeActionLog{})

	e, err := w.CreateEnlistment(context.Background(), EnlistmentInput{
		FirstName:         "Ana",
		LastName:          "Souza",
		Email:             "ana@example.com",
		DiscordNick:       "ana#001",
		Motivation:        "Quero voar em formação",
		AviationKnowledge: entity.KnowledgeWillingToLearn,
		Age:               "19",
		SimFlightExp:      "sim",
		KnowsSquadron:     "nao",
		Shifts:            []string{"tarde", "noite"},
	}, "203.0.113.9")

	require.NoError(t, err)
	assert.Equal(t, entity.EnlistmentPending, e.Status)
	assert.Equal(t, "203.0.113.9", e.SubmitterIP)
	assert.WithinDuration(t, time.Now(), e.CreatedAt, time.Second)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "🆕 Novo Alistamento Recebido", notifier.sent[0].Title)
}

func TestCreateEnlistmentRequiresShifts(t *testing.T) {
	enlRepo := newFakeEnlistmentRepo()
	w := newTestWorkflow(newFakePresentationRepo(), enlRepo, &fakeNotifier{}, &fakeActionLog{})

	_, err := w.CreateEnlistment(context.Background(), EnlistmentInput{
		FirstName:         "Ana",
		LastName:          "Souza",
		Email:             "ana@example.com",
		DiscordNick:       "ana#001",
		Motivation:        "Quero voar",
		AviationKnowledge: entity.KnowledgeExperienced,
		Age:               "19",
		SimFlightExp:      "sim",
		KnowsSquadron:     "nao",
		Shifts:            []string{},
	}, "203.0.113.9")

	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "turno", validationErr.Field)
	assert.Empty(t, enlRepo.records)
}

func TestEditPresentationValidationPerformsNoWrite(t *testing.T) {
	presRepo := newFakePresentationRepo()
	notifier := &fakeNotifier{}
	w := newTestWorkflow(presRepo, newFakeEnlistmentRepo(), notifier, &fakeActionLog{})
	before := *seedPresentation(presRepo)

	err := w.EditPresentation(context.Background(), "p-42", entity.PresentationEdit{
		City:        "",
		Date:        time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Time:        "15:00",
		Description: "Updated description",
		Status:      entity.PresentationApproved,
	})

	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, before, *presRepo.records["p-42"])
	assert.Empty(t, notifier.sent)
}

func TestEditPresentationUpdatesAllFieldsAndNotifies(t *testing.T) {
	presRepo := newFakePresentationRepo()
	notifier := &fakeNotifier{}
	w := newTestWorkflow(presRepo, newFakeEnlistmentRepo(), notifier, &fakeActionLog{})
	before := *seedPresentation(presRepo)

	newDate := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	err := w.EditPresentation(context.Background(), "p-42", entity.PresentationEdit{
		City:        "Londrina",
		Date:        newDate,
		Time:        "17:00",
		Description: "Moved to a bigger venue",
		Status:      entity.PresentationRescheduled,
	})

	require.NoError(t, err)
	after := presRepo.records["p-42"]
	assert.Equal(t, "Londrina", after.City)
	assert.Equal(t, newDate, after.Date)
	assert.Equal(t, "17:00", after.Time)
	assert.Equal(t, entity.PresentationRescheduled, after.Status)
	// Contact fields and createdAt are not part of the edit
	assert.Equal(t, before.Email, after.Email)
	assert.Equal(t, before.DiscordID, after.DiscordID)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "✏️ Apresentação Atualizada", notifier.sent[0].Title)
}

func TestEditPresentationNotFound(t *testing.T) {
	w := newTestWorkflow(newFakePresentationRepo(), newFakeEnlistmentRepo(), &fakeNotifier{}, &fakeActionLog{})

	err := w.EditPresentation(context.Background(), "missing", entity.PresentationEdit{
		City:        "Londrina",
		Date:        time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Time:        "17:00",
		Description: "Moved",
		Status:      entity.PresentationApproved,
	})

	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestDeleteRecordMissingReturnsNotFoundWithoutNotification(t *testing.T) {
	notifier := &fakeNotifier{}
	w := newTestWorkflow(newFakePresentationRepo(), newFakeEnlistmentRepo(), notifier, &fakeActionLog{})

	err := w.DeleteRecord(context.Background(), entity.RecordPresentation, "already-gone")

	require.ErrorIs(t, err, entity.ErrNotFound)
	assert.Empty(t, notifier.sent)
}

func TestDeleteRecordSendsNoNotification(t *testing.T) {
	presRepo := newFakePresentationRepo()
	notifier := &fakeNotifier{}
	log := &fakeActionLog{}
	w := newTestWorkflow(presRepo, newFakeEnlistmentRepo(), notifier, log)
	seedPresentation(presRepo)

	err := w.DeleteRecord(context.Background(), entity.RecordPresentation, "p-42")

	require.NoError(t, err)
	assert.Empty(t, presRepo.records)
	assert.Empty(t, notifier.sent)
	// The audit trail still records the delete
	require.Len(t, log.appended, 1)
	assert.Equal(t, entity.ActionDelete, log.appended[0].Action)
}

func TestActionLogRecordsTransitions(t *testing.T) {
	presRepo := newFakePresentationRepo()
	log := &fakeActionLog{}
	w := newTestWorkflow(presRepo, newFakeEnlistmentRepo(), &fakeNotifier{}, log)
	seedPresentation(presRepo)

	require.NoError(t, w.TransitionStatus(context.Background(), entity.RecordPresentation, "p-42", "approved"))

	require.Len(t, log.appended, 1)
	entry := log.appended[0]
	assert.Equal(t, entity.ActionStatusChange, entry.Action)
	assert.Equal(t, "pending", entry.FromStatus)
	assert.Equal(t, "approved", entry.ToStatus)
	assert.Equal(t, ActorAdmin, entry.Actor)
	assert.True(t, entry.Notified)
}
