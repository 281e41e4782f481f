package rest

import (
	"io"
	"net/http"

	"eda-booking-service/internal/domain/entity"
	"eda-booking-service/internal/domain/repository"
	"eda-booking-service/internal/usecase"
	"eda-booking-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the dashboard triage API.
type AdminHandler struct {
	workflow      *usecase.Workflow
	presentations repository.PresentationRepository
	enlistments   repository.EnlistmentRepository
	logger        logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	workflow *usecase.Workflow,
	presentations repository.PresentationRepository,
	enlistments repository.EnlistmentRepository,
	logger logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		workflow:      workflow,
		presentations: presentations,
		enlistments:   enlistments,
		logger:        logger,
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

type adminPresentationRequest struct {
	City        string `json:"city"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ListPresentations returns every booking request, newest first
func (h *AdminHandler) ListPresentations(c *gin.Context) {
	presentations, err := h.presentations.FindAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list presentations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, presentations)
}

// CreatePresentation creates a booking directly from the dashboard. The
// record carries sentinel contact values and may start in any valid status.
func (h *AdminHandler) CreatePresentation(c *gin.Context) {
	var req adminPresentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	p, err := h.workflow.CreatePresentation(c.Request.Context(), usecase.PresentationInput{
		City:        req.City,
		Date:        date,
		Time:        req.Time,
		Description: req.Description,
		Status:      entity.PresentationStatus(req.Status),
	}, true)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// TransitionPresentation applies a status change to a booking request
func (h *AdminHandler) TransitionPresentation(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.workflow.TransitionStatus(c.Request.Context(), entity.RecordPresentation, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// EditPresentation replaces the editable fields of a booking request
func (h *AdminHandler) EditPresentation(c *gin.Context) {
	var req adminPresentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	err = h.workflow.EditPresentation(c.Request.Context(), c.Param("id"), entity.PresentationEdit{
		City:        req.City,
		Date:        date,
		Time:        req.Time,
		Description: req.Description,
		Status:      entity.PresentationStatus(req.Status),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeletePresentation removes a booking request permanently
func (h *AdminHandler) DeletePresentation(c *gin.Context) {
	err := h.workflow.DeleteRecord(c.Request.Context(), entity.RecordPresentation, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// StreamPresentations pushes the full admin listing over SSE on every change
func (h *AdminHandler) StreamPresentations(c *gin.Context) {
	ctx := c.Request.Context()

	snapshots, err := h.presentations.Watch(ctx)
	if err != nil {
		h.logger.Error("Failed to open presentation stream", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snapshot)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// ListEnlistments returns every application, newest first
func (h *AdminHandler) ListEnlistments(c *gin.Context) {
	enlistments, err := h.enlistments.FindAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list enlistments", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, enlistments)
}

// TransitionEnlistment applies a status change to an application
func (h *AdminHandler) TransitionEnlistment(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.workflow.TransitionStatus(c.Request.Context(), entity.RecordEnlistment, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// DeleteEnlistment removes an application permanently
func (h *AdminHandler) DeleteEnlistment(c *gin.Context) {
	err := h.workflow.DeleteRecord(c.Request.Context(), entity.RecordEnlistment, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// StreamEnlistments pushes the full admin listing over SSE on every change
func (h *AdminHandler) StreamEnlistments(c *gin.Context) {
	ctx := c.Request.Context()

	snapshots, err := h.enlistments.Watch(ctx)
	if err != nil {
		h.logger.Error("Failed to open enlistment stream", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snapshot)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
