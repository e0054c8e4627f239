package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/views"
)

type ResultHandler struct {
	analysisRepo repositories.AnalysisRepository
	views        *views.Renderer
	sessions     *session.Store
	logger       *zap.Logger
}

func NewResultHandler(
	analysisRepo repositories.AnalysisRepository,
	renderer *views.Renderer,
	sessions *session.Store,
	logger *zap.Logger,
) *ResultHandler {
	return &ResultHandler{
		analysisRepo: analysisRepo,
		views:        renderer,
		sessions:     sessions,
		logger:       logger,
	}
}

// HandleGetResult handles GET /api/v1/results/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	analysis, err := h.lookup(c)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{
				"error": fe.Message,
			})
		}
		return err
	}

	response := models.ResultResponse{
		ID:     analysis.ID.String(),
		Status: string(analysis.Status),
	}

	if analysis.Status == models.StatusCompleted {
		response.Result = models.ResultFrom(analysis)
	}

	if analysis.Status == models.StatusFailed && analysis.ErrorMessage != nil {
		response.ErrorMessage = analysis.ErrorMessage
	}

	return c.JSON(response)
}

// HandleResultsPage handles GET /results/:id
func (h *ResultHandler) HandleResultsPage(c *fiber.Ctx) error {
	return h.renderResults(c, false)
}

// HandlePrintPage handles GET /results/:id/print
func (h *ResultHandler) HandlePrintPage(c *fiber.Ctx) error {
	return h.renderResults(c, true)
}

func (h *ResultHandler) renderResults(c *fiber.Ctx, printMode bool) error {
	analysis, err := h.lookup(c)
	if err != nil {
		// Browsers go back to the form with the reason instead of a JSON error body.
		msg := "Failed to load analysis"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			msg = fe.Message
		}
		if ferr := setFlash(c, h.sessions, msg); ferr != nil {
			h.logger.Warn("failed to store flash message", zap.Error(ferr))
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	page := views.ResultsPage{
		ID:        analysis.ID.String(),
		Status:    string(analysis.Status),
		Pending:   analysis.Status.Pending(),
		PrintMode: printMode,
	}

	switch analysis.Status {
	case models.StatusCompleted:
		page.Result = models.ResultFrom(analysis)
	case models.StatusFailed:
		page.ErrorMessage = "The analysis could not be completed."
		if analysis.ErrorMessage != nil {
			page.ErrorMessage = *analysis.ErrorMessage
		}
	}

	c.Type("html", "utf-8")
	return h.views.Results(c, page)
}

func (h *ResultHandler) lookup(c *fiber.Ctx) (*models.Analysis, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid analysis ID format")
	}

	analysis, err := h.analysisRepo.FindByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Analysis not found")
	}
	if err != nil {
		h.logger.Error("failed to load analysis", zap.String("analysis_id", id.String()), zap.Error(err))
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load analysis")
	}

	return analysis, nil
}
