package rest

import (
	"io"
	"net/http"
	"sort"
	"time"

	"eda-booking-service/internal/domain/entity"
	"eda-booking-service/internal/domain/repository"
	"eda-booking-service/internal/usecase"
	"eda-booking-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the submission forms and the public home page data.
type PublicHandler struct {
	workflow      *usecase.Workflow
	presentations repository.PresentationRepository
	showcase      repository.ShowcaseRepository
	logger        logger.Logger
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(
	workflow *usecase.Workflow,
	presentations repository.PresentationRepository,
	showcase repository.ShowcaseRepository,
	logger logger.Logger,
) *PublicHandler {
	return &PublicHandler{
		workflow:      workflow,
		presentations: presentations,
		showcase:      showcase,
		logger:        logger,
	}
}

type presentationRequest struct {
	City        string `json:"city"`
	Email       string `json:"email"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
	DiscordID   string `json:"discordId"`
}

type enlistmentRequest struct {
	FirstName         string   `json:"nome"`
	LastName          string   `json:"sobrenome"`
	Email             string   `json:"email"`
	DiscordNick       string   `json:"discordNick"`
	Motivation        string   `json:"motivoEntrada"`
	AviationKnowledge string   `json:"conhecimentoAviao"`
	Age               string   `json:"idade"`
	SimFlightExp      string   `json:"vooFivem"`
	KnowsSquadron     string   `json:"conheceEsquadrilha"`
	Shifts            []string `json:"turno"`
}

// CreatePresentation handles the public booking form. The status field of
// the request body, if any, is ignored: submitter-created records always
// start pending.
func (h *PublicHandler) CreatePresentation(c *gin.Context) {
	var req presentationRequest
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
		Email:       req.Email,
		Date:        date,
		Time:        req.Time,
		Description: req.Description,
		DiscordID:   req.DiscordID,
	}, false)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// CreateEnlistment handles the public application form and captures the
// submitter IP from the connection.
func (h *PublicHandler) CreateEnlistment(c *gin.Context) {
	var req enlistmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	e, err := h.workflow.CreateEnlistment(c.Request.Context(), usecase.EnlistmentInput{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		DiscordNick:       req.DiscordNick,
		Motivation:        req.Motivation,
		AviationKnowledge: req.AviationKnowledge,
		Age:               req.Age,
		SimFlightExp:      req.SimFlightExp,
		KnowsSquadron:     req.KnowsSquadron,
		Shifts:            req.Shifts,
	}, c.ClientIP())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, e)
}

// UpcomingPresentations returns approved presentations from today on,
// soonest first.
func (h *PublicHandler) UpcomingPresentations(c *gin.Context) {
	presentations, err := h.presentations.FindUpcoming(c.Request.Context(), startOfToday())
	if err != nil {
		h.logger.Error("Failed to list upcoming presentations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, presentations)
}

// StreamUpcoming pushes the upcoming listing over SSE whenever the
// collection changes. The subscription ends with the request context.
func (h *PublicHandler) StreamUpcoming(c *gin.Context) {
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
			c.SSEvent("snapshot", filterUpcoming(snapshot, startOfToday()))
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// CarouselImages returns the home page hero images
func (h *PublicHandler) CarouselImages(c *gin.Context) {
	images, err := h.showcase.CarouselImages(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list carousel images", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, images)
}

// Pilots returns the public roster
func (h *PublicHandler) Pilots(c *gin.Context) {
	pilots, err := h.showcase.Pilots(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list pilots", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, pilots)
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}

func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// filterUpcoming narrows a full snapshot down to the public upcoming view.
func filterUpcoming(snapshot []*entity.Presentation, from time.Time) []*entity.Presentation {
	upcoming := []*entity.Presentation{}
	for _, p := range snapshot {
		if p.Status == entity.PresentationApproved && !p.Date.Before(from) {
			upcoming = append(upcoming, p)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})
	return upcoming
}
