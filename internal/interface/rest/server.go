package rest

import (
	"errors"
	"net/http"
	"time"

	"eda-booking-service/internal/domain/entity"
	"eda-booking-service/internal/domain/repository"
	"eda-booking-service/internal/usecase"
	"eda-booking-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries the handler dependencies and settings.
type RouterConfig struct {
	Workflow      *usecase.Workflow
	Presentations repository.PresentationRepository
	Enlistments   repository.EnlistmentRepository
	Showcase      repository.ShowcaseRepository
	AdminToken    string
	Logger        logger.Logger
}

// NewRouter builds the HTTP surface: public form endpoints, the admin
// console API behind a bearer token, SSE snapshot streams, health and
// metrics.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(cfg.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := NewPublicHandler(cfg.Workflow, cfg.Presentations, cfg.Showcase, cfg.Logger)
	api := r.Group("/api")
	{
		api.POST("/presentations", public.CreatePresentation)
		api.GET("/presentations/upcoming", public.UpcomingPresentations)
		api.GET("/presentations/upcoming/stream", public.StreamUpcoming)
		api.POST("/enlistments", public.CreateEnlistment)
		api.GET("/carousel", public.CarouselImages)
		api.GET("/pilots", public.Pilots)
	}

	admin := NewAdminHandler(cfg.Workflow, cfg.Presentations, cfg.Enlistments, cfg.Logger)
	adminAPI := r.Group("/api/admin", bearerAuth(cfg.AdminToken))
	{
		adminAPI.GET("/presentations", admin.ListPresentations)
		adminAPI.POST("/presentations", admin.CreatePresentation)
		adminAPI.PATCH("/presentations/:id/status", admin.TransitionPresentation)
		adminAPI.PUT("/presentations/:id", admin.EditPresentation)
		adminAPI.DELETE("/presentations/:id", admin.DeletePresentation)
		adminAPI.GET("/presentations/stream", admin.StreamPresentations)

		adminAPI.GET("/enlistments", admin.ListEnlistments)
		adminAPI.PATCH("/enlistments/:id/status", admin.TransitionEnlistment)
		adminAPI.DELETE("/enlistments/:id", admin.DeleteEnlistment)
		adminAPI.GET("/enlistments/stream", admin.StreamEnlistments)
	}

	return r
}

// writeError maps the workflow error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var validationErr *entity.ValidationError
	var storeErr *entity.StoreWriteError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.As(err, &storeErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "store write failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func bearerAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" || c.GetHeader("Authorization") != "Bearer "+token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
