package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"alfredoptarigan/resume-analyzer/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

type IndexPage struct {
	Flash                string
	MaxFileSize          int64
	MaxFileSizeMB        string
	MinDescriptionLength int
}

type ResultsPage struct {
	ID           string
	Status       string
	Pending      bool
	PrintMode    bool
	Result       *models.AnalysisResult
	ErrorMessage string
}

type Renderer struct {
	index   *template.Template
	results *template.Template
}

func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"scoreColor": ScoreColor,
		"scoreIcon":  ScoreIcon,
		"score": func(v float64) string {
			return fmt.Sprintf("%.0f", v)
		},
	}

	index, err := template.New("layout.html").Funcs(funcs).
		ParseFS(templateFS, "templates/layout.html", "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	results, err := template.New("layout.html").Funcs(funcs).
		ParseFS(templateFS, "templates/layout.html", "templates/results.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse results template: %w", err)
	}

	return &Renderer{index: index, results: results}, nil
}

func (r *Renderer) Index(w io.Writer, page IndexPage) error {
	return r.index.ExecuteTemplate(w, "layout.html", page)
}

func (r *Renderer) Results(w io.Writer, page ResultsPage) error {
	return r.results.ExecuteTemplate(w, "layout.html", page)
}

// ScoreColor maps a 0-100 score to a bootstrap contextual color.
func ScoreColor(score float64) string {
	switch {
	case score >= 80:
		return "success"
	case score >= 60:
		return "warning"
	}
	return "danger"
}

func ScoreIcon(score float64) string {
	switch {
	case score >= 80:
		return "fas fa-trophy"
	case score >= 60:
		return "fas fa-thumbs-up"
	}
	return "fas fa-exclamation-triangle"
}
