package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/form"
	"alfredoptarigan/resume-analyzer/internal/metrics"
	"alfredoptarigan/resume-analyzer/internal/services"
	"alfredoptarigan/resume-analyzer/internal/views"
)

type PageHandler struct {
	views                *views.Renderer
	sessions             *session.Store
	maxFileSize          int64
	minDescriptionLength int
	logger               *zap.Logger
}

func NewPageHandler(
	renderer *views.Renderer,
	sessions *session.Store,
	maxFileSize int64,
	minDescriptionLength int,
	logger *zap.Logger,
) *PageHandler {
	return &PageHandler{
		views:                renderer,
		sessions:             sessions,
		maxFileSize:          maxFileSize,
		minDescriptionLength: minDescriptionLength,
		logger:               logger,
	}
}

// HandleIndex handles GET /
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	flash, err := popFlash(c, h.sessions)
	if err != nil {
		h.logger.Warn("failed to read flash message", zap.Error(err))
	}

	c.Type("html", "utf-8")
	return h.views.Index(c, views.IndexPage{
		Flash:                flash,
		MaxFileSize:          h.maxFileSize,
		MaxFileSizeMB:        form.FormatSizeMB(h.maxFileSize),
		MinDescriptionLength: h.minDescriptionLength,
	})
}

// HandleSampleJD handles GET /sample-jd
func (h *PageHandler) HandleSampleJD(c *fiber.Ctx) error {
	metrics.SampleRequests.Inc()
	return c.JSON(form.SamplePayload{JobDescription: services.SampleJobDescription})
}
