package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

type fakeAnalysisRepo struct {
	mu       sync.Mutex
	analyses map[uuid.UUID]*models.Analysis
	statuses []models.AnalysisStatus
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{analyses: make(map[uuid.UUID]*models.Analysis)}
}

func (r *fakeAnalysisRepo) Create(a *models.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.analyses[a.ID] = &cp
	return nil
}

func (r *fakeAnalysisRepo) FindByID(id uuid.UUID) (*models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAnalysisRepo) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = status
	r.statuses = append(r.statuses, status)
	return nil
}

func (r *fakeAnalysisRepo) UpdateResult(id uuid.UUID, result *models.AnalysisResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = models.StatusCompleted
	a.OverallScore = &result.OverallScore
	a.SkillScore = &result.SkillScore
	a.RoleScore = &result.RoleScore
	a.ExperienceScore = &result.ExperienceScore
	a.MatchedKeywords = result.MatchedKeywords
	a.MissingKeywords = result.MissingKeywords
	a.Suggestions = result.Suggestions
	r.statuses = append(r.statuses, models.StatusCompleted)
	return nil
}

func (r *fakeAnalysisRepo) UpdateError(id uuid.UUID, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = models.StatusFailed
	a.ErrorMessage = &msg
	r.statuses = append(r.statuses, models.StatusFailed)
	return nil
}

func (r *fakeAnalysisRepo) FindPendingJobs(limit int) ([]models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Analysis
	for _, a := range r.analyses {
		if a.Status == models.StatusQueued && len(out) < limit {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeDocumentRepo struct {
	docs map[uuid.UUID]*models.Document
}

func (r *fakeDocumentRepo) Create(d *models.Document) error {
	r.docs[d.ID] = d
	return nil
}

func (r *fakeDocumentRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return d, nil
}

type fakeGemini struct {
	response string
	err      error
	prompts  []string
}

func (g *fakeGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.response, g.err
}

func (g *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, _ int) (string, error) {
	return g.GenerateText(ctx, prompt, temperature)
}

type fakePDFParser struct {
	text string
	err  error
}

func (p *fakePDFParser) ExtractText(string) (string, error) {
	return p.text, p.err
}
