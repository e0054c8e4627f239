package handlers

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/form"
	"alfredoptarigan/resume-analyzer/internal/metrics"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const genericAnalyzeError = "An error occurred during analysis. Please try again."

var pdfMagic = []byte("%PDF-")

type AnalyzeHandler struct {
	docRepo              repositories.DocumentRepository
	analysisRepo         repositories.AnalysisRepository
	storageService       services.StorageService
	worker               services.Worker
	sessions             *session.Store
	maxFileSize          int64
	minDescriptionLength int
	logger               *zap.Logger
}

func NewAnalyzeHandler(
	docRepo repositories.DocumentRepository,
	analysisRepo repositories.AnalysisRepository,
	storageService services.StorageService,
	worker services.Worker,
	sessions *session.Store,
	maxFileSize int64,
	minDescriptionLength int,
	logger *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		docRepo:              docRepo,
		analysisRepo:         analysisRepo,
		storageService:       storageService,
		worker:               worker,
		sessions:             sessions,
		maxFileSize:          maxFileSize,
		minDescriptionLength: minDescriptionLength,
		logger:               logger,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return h.reject(c, "No resume file uploaded")
	}

	if fileHeader.Filename == "" {
		return h.reject(c, "No resume file selected")
	}

	jobDescription := c.FormValue("job_description")
	if err := form.ValidateDescription(jobDescription, h.minDescriptionLength); err != nil {
		return h.reject(c, form.MessageFor(err))
	}

	// The extension decides the type here; the browser's MIME type is not trusted.
	handle := form.FileHandle{Name: fileHeader.Filename, Size: fileHeader.Size}
	if err := form.ValidateFile(handle, false, h.maxFileSize); err != nil {
		return h.reject(c, form.MessageFor(err))
	}

	if ok, err := looksLikePDF(fileHeader); err != nil || !ok {
		return h.reject(c, form.MessageFor(form.ErrNotPDF))
	}

	filename, filePath, err := h.storageService.SaveFile(fileHeader, "resume")
	if err != nil {
		return h.fail(c, fmt.Errorf("failed to save resume: %w", err))
	}

	now := time.Now()
	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: fileHeader.Filename,
		ContentType:      fileHeader.Header.Get("Content-Type"),
		SizeBytes:        fileHeader.Size,
		FilePath:         filePath,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return h.fail(c, fmt.Errorf("failed to save resume document record: %w", err))
	}

	analysis := &models.Analysis{
		ID:               uuid.New(),
		ResumeDocumentID: doc.ID,
		JobDescription:   jobDescription,
		Status:           models.StatusQueued,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := h.analysisRepo.Create(analysis); err != nil {
		h.storageService.DeleteFile(filename)
		return h.fail(c, fmt.Errorf("failed to create analysis: %w", err))
	}

	h.worker.EnqueueJob(analysis.ID)
	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()

	h.logger.Info("analysis queued",
		zap.String("analysis_id", analysis.ID.String()),
		zap.String("file", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size),
	)

	if acceptsJSON(c) {
		return c.Status(fiber.StatusAccepted).JSON(models.AnalyzeResponse{
			ID:     analysis.ID.String(),
			Status: string(models.StatusQueued),
		})
	}

	return c.Redirect("/results/"+analysis.ID.String(), fiber.StatusSeeOther)
}

func (h *AnalyzeHandler) reject(c *fiber.Ctx, msg string) error {
	metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
	h.logger.Debug("submission rejected", zap.String("reason", msg))

	if acceptsJSON(c) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msg,
		})
	}

	if err := setFlash(c, h.sessions, msg); err != nil {
		h.logger.Warn("failed to store flash message", zap.Error(err))
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *AnalyzeHandler) fail(c *fiber.Ctx, err error) error {
	metrics.SubmissionsTotal.WithLabelValues("error").Inc()
	h.logger.Error("error during analysis submission", zap.Error(err))

	if acceptsJSON(c) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": genericAnalyzeError,
		})
	}

	if ferr := setFlash(c, h.sessions, genericAnalyzeError); ferr != nil {
		h.logger.Warn("failed to store flash message", zap.Error(ferr))
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func acceptsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

func looksLikePDF(fh *multipart.FileHeader) (bool, error) {
	f, err := fh.Open()
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, head); err != nil {
		return false, nil
	}
	return bytes.Equal(head, pdfMagic), nil
}
