package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const analysisJSON = "```json\n" + `{
  "overall_score": 78.5,
  "skill_score": 82,
  "role_score": 120,
  "experience_score": -4,
  "matched_keywords": ["Go", "PostgreSQL", "go", " "],
  "missing_keywords": ["Docker"],
  "suggestions": ["Quantify your impact.", "  "],
  "resume_keywords": ["go"],
  "jd_keywords": ["go", "docker"]
}` + "\n```"

type analyzerFixture struct {
	analyses *fakeAnalysisRepo
	docs     *fakeDocumentRepo
	gemini   *fakeGemini
	parser   *fakePDFParser
	upload   string
	id       uuid.UUID
	svc      AnalyzerService
}

func newAnalyzerFixture(t *testing.T) *analyzerFixture {
	t.Helper()

	dir := t.TempDir()
	storage := NewStorageService(dir)

	upload := filepath.Join(dir, "resume_test.pdf")
	require.NoError(t, os.WriteFile(upload, []byte("%PDF-1.4"), 0o644))

	doc := &models.Document{ID: uuid.New(), Filename: "resume_test.pdf", FilePath: upload}
	docs := &fakeDocumentRepo{docs: map[uuid.UUID]*models.Document{doc.ID: doc}}

	analyses := newFakeAnalysisRepo()
	id := uuid.New()
	require.NoError(t, analyses.Create(&models.Analysis{
		ID:               id,
		ResumeDocumentID: doc.ID,
		JobDescription:   "Go developer needed",
		Status:           models.StatusQueued,
	}))

	gemini := &fakeGemini{response: analysisJSON}
	parser := &fakePDFParser{text: "Jane Doe\nGo engineer"}

	return &analyzerFixture{
		analyses: analyses,
		docs:     docs,
		gemini:   gemini,
		parser:   parser,
		upload:   upload,
		id:       id,
		svc:      NewAnalyzerService(analyses, docs, storage, gemini, parser, 3, time.Minute, zaptest.NewLogger(t)),
	}
}

func TestAnalyzeResume_Success(t *testing.T) {
	f := newAnalyzerFixture(t)

	require.NoError(t, f.svc.AnalyzeResume(context.Background(), f.id))

	a, err := f.analyses.FindByID(f.id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, a.Status)
	assert.Equal(t, []models.AnalysisStatus{models.StatusProcessing, models.StatusCompleted}, f.analyses.statuses)
	assert.InDelta(t, 78.5, *a.OverallScore, 0.001)
	assert.InDelta(t, 100, *a.RoleScore, 0.001)
	assert.InDelta(t, 0, *a.ExperienceScore, 0.001)
	assert.Equal(t, []string{"go", "postgresql"}, a.MatchedKeywords)
	assert.Equal(t, []string{"Quantify your impact."}, a.Suggestions)

	require.Len(t, f.gemini.prompts, 1)
	assert.Contains(t, f.gemini.prompts[0], "Go developer needed")
	assert.Contains(t, f.gemini.prompts[0], "Jane Doe")

	_, err = os.Stat(f.upload)
	assert.True(t, os.IsNotExist(err), "upload should be removed after extraction")
}

func TestAnalyzeResume_ScannedPDF(t *testing.T) {
	f := newAnalyzerFixture(t)
	f.parser.err = ErrNoPDFText

	err := f.svc.AnalyzeResume(context.Background(), f.id)
	require.ErrorIs(t, err, ErrNoPDFText)

	a, _ := f.analyses.FindByID(f.id)
	assert.Equal(t, models.StatusFailed, a.Status)
	require.NotNil(t, a.ErrorMessage)
	assert.Equal(t, scannedPDFMessage, *a.ErrorMessage)
	assert.Empty(t, f.gemini.prompts)
}

func TestAnalyzeResume_GenerationFailure(t *testing.T) {
	f := newAnalyzerFixture(t)
	f.gemini.err = errors.New("quota exceeded")

	err := f.svc.AnalyzeResume(context.Background(), f.id)
	require.Error(t, err)

	a, _ := f.analyses.FindByID(f.id)
	assert.Equal(t, models.StatusFailed, a.Status)
	assert.Contains(t, *a.ErrorMessage, "quota exceeded")
}

func TestAnalyzeResume_UnreadableAnswer(t *testing.T) {
	f := newAnalyzerFixture(t)
	f.gemini.response = "I cannot help with that."

	require.Error(t, f.svc.AnalyzeResume(context.Background(), f.id))

	a, _ := f.analyses.FindByID(f.id)
	assert.Equal(t, models.StatusFailed, a.Status)
}

func TestAnalyzeResume_MissingDocument(t *testing.T) {
	f := newAnalyzerFixture(t)
	f.docs.docs = map[uuid.UUID]*models.Document{}

	require.Error(t, f.svc.AnalyzeResume(context.Background(), f.id))

	a, _ := f.analyses.FindByID(f.id)
	assert.Equal(t, models.StatusFailed, a.Status)
	assert.Contains(t, *a.ErrorMessage, "Resume document not found")
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("Here you go:\n```json\n{\"a\":1}\n```"))
	assert.Equal(t, `[1,2]`, extractJSON("list: [1,2]"))
	assert.Equal(t, "plain", extractJSON("plain"))
}
