package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	applog "alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/metrics"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

const scannedPDFMessage = "Could not extract text from the PDF. Please ensure it's not a scanned document."

type AnalyzerService interface {
	AnalyzeResume(ctx context.Context, analysisID uuid.UUID) error
}

type analyzerService struct {
	analysisRepo   repositories.AnalysisRepository
	docRepo        repositories.DocumentRepository
	storageService StorageService
	geminiService  GeminiService
	pdfParser      PDFParserService
	promptBuilder  *PromptBuilder
	maxRetries     int
	timeout        time.Duration
	logger         *zap.Logger
}

func NewAnalyzerService(
	analysisRepo repositories.AnalysisRepository,
	docRepo repositories.DocumentRepository,
	storageService StorageService,
	geminiService GeminiService,
	pdfParser PDFParserService,
	maxRetries int,
	timeout time.Duration,
	logger *zap.Logger,
) AnalyzerService {
	return &analyzerService{
		analysisRepo:   analysisRepo,
		docRepo:        docRepo,
		storageService: storageService,
		geminiService:  geminiService,
		pdfParser:      pdfParser,
		promptBuilder:  NewPromptBuilder(),
		maxRetries:     maxRetries,
		timeout:        timeout,
		logger:         logger.Named("analyzer"),
	}
}

// AnalyzeResume implements AnalyzerService.
func (a *analyzerService) AnalyzeResume(ctx context.Context, analysisID uuid.UUID) error {
	start := time.Now()
	log := a.logger.With(zap.String("analysis_id", analysisID.String()))

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	if err := a.analysisRepo.UpdateStatus(analysisID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Info("starting analysis")

	analysis, err := a.analysisRepo.FindByID(analysisID)
	if err != nil {
		return a.fail(analysisID, "lookup", err.Error(), fmt.Errorf("failed to get analysis: %w", err))
	}

	doc, err := a.docRepo.FindByID(analysis.ResumeDocumentID)
	if err != nil {
		return a.fail(analysisID, "lookup", fmt.Sprintf("Resume document not found: %v", err),
			fmt.Errorf("failed to get resume document: %w", err))
	}

	log.Debug("extracting resume text", zap.String("file", doc.Filename))
	resumeText, err := a.pdfParser.ExtractText(doc.FilePath)

	// The upload is only needed for extraction.
	if delErr := a.storageService.DeleteFile(doc.Filename); delErr != nil {
		log.Warn("failed to remove uploaded resume", zap.Error(delErr))
	}

	if err != nil {
		msg := fmt.Sprintf("Failed to parse resume: %v", err)
		if errors.Is(err, ErrNoPDFText) {
			msg = scannedPDFMessage
		}
		return a.fail(analysisID, "extract", msg, fmt.Errorf("failed to parse resume: %w", err))
	}

	prompt := a.promptBuilder.BuildAnalysisPrompt(resumeText, analysis.JobDescription)
	log.Debug("analysis prompt built", zap.Int("prompt_length", len(prompt)))

	response, err := a.geminiService.GenerateTextWithRetry(ctx, prompt, 0.3, a.maxRetries)
	if err != nil {
		return a.fail(analysisID, "generate", fmt.Sprintf("Failed to analyze resume: %v", err),
			fmt.Errorf("failed to generate analysis: %w", err))
	}

	result, err := ParseAnalysisResult(response)
	if err != nil {
		log.Warn("unreadable analysis response", zap.String("response", applog.TruncateForLog(response, 500)))
		return a.fail(analysisID, "parse", "The analysis engine returned an unreadable answer. Please try again.",
			fmt.Errorf("failed to parse analysis response: %w", err))
	}

	if err := a.analysisRepo.UpdateResult(analysisID, result); err != nil {
		metrics.AnalysesFailed.WithLabelValues("save").Inc()
		return fmt.Errorf("failed to save results: %w", err)
	}

	metrics.AnalysesCompleted.Inc()
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	log.Info("analysis completed",
		zap.Float64("overall_score", result.OverallScore),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (a *analyzerService) fail(id uuid.UUID, stage, userMsg string, err error) error {
	metrics.AnalysesFailed.WithLabelValues(stage).Inc()
	if updErr := a.analysisRepo.UpdateError(id, userMsg); updErr != nil {
		a.logger.Error("failed to record analysis error",
			zap.String("analysis_id", id.String()),
			zap.Error(updErr),
		)
	}
	return err
}

// ParseAnalysisResult decodes the engine's JSON answer and normalises it:
// scores are clamped to 0-100 and keyword lists are lowercased and deduplicated.
func ParseAnalysisResult(response string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(extractJSON(response)), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	result.OverallScore = clampScore(result.OverallScore)
	result.SkillScore = clampScore(result.SkillScore)
	result.RoleScore = clampScore(result.RoleScore)
	result.ExperienceScore = clampScore(result.ExperienceScore)
	result.MatchedKeywords = normalizeKeywords(result.MatchedKeywords)
	result.MissingKeywords = normalizeKeywords(result.MissingKeywords)
	result.ResumeKeywords = normalizeKeywords(result.ResumeKeywords)
	result.JDKeywords = normalizeKeywords(result.JDKeywords)

	suggestions := result.Suggestions[:0]
	for _, s := range result.Suggestions {
		if s = strings.TrimSpace(s); s != "" {
			suggestions = append(suggestions, s)
		}
	}
	result.Suggestions = suggestions

	return &result, nil
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

func normalizeKeywords(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, kw := range in {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

// extractJSON pulls the JSON object or array out of text that may be wrapped in markdown.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
