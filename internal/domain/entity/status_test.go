package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresentationStatusValid(t *testing.T) {
	for _, s := range []PresentationStatus{
		PresentationPending, PresentationApproved, PresentationRejected,
		PresentationRescheduled, PresentationCanceled,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, PresentationStatus("").Valid())
	assert.False(t, PresentationStatus("archived").Valid())
	assert.False(t, PresentationStatus("Approved").Valid(), "enum values are case sensitive")
}

func TestEnlistmentStatusValid(t *testing.T) {
	for _, s := range []EnlistmentStatus{
		EnlistmentPending, EnlistmentInProgress, EnlistmentApproved, EnlistmentRejected,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, EnlistmentStatus("").Valid())
	assert.False(t, EnlistmentStatus("rescheduled").Valid(), "presentation-only status")
}

func TestPresentationStatusLabels(t *testing.T) {
	assert.Equal(t, "Pendente", PresentationPending.Label())
	assert.Equal(t, "Aprovada", PresentationApproved.Label())
	assert.Equal(t, "Rejeitada", PresentationRejected.Label())
	assert.Equal(t, "Reagendada", PresentationRescheduled.Label())
	assert.Equal(t, "Cancelada", PresentationCanceled.Label())
}

func TestEnlistmentStatusLabels(t *testing.T) {
	assert.Equal(t, "Pendente", EnlistmentPending.Label())
	assert.Equal(t, "Em Análise", EnlistmentInProgress.Label())
	assert.Equal(t, "Aprovado", EnlistmentApproved.Label())
	assert.Equal(t, "Rejeitado", EnlistmentRejected.Label())
}

func TestStoreWriteErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &StoreWriteError{Op: "insert presentation", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "insert presentation")
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("city", "required")

	assert.Equal(t, "city", err.Field)
	assert.Contains(t, err.Error(), "city")
	assert.Contains(t, err.Error(), "required")
}
