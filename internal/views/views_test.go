package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
)

func TestScoreHelpers(t *testing.T) {
	assert.Equal(t, "success", ScoreColor(80))
	assert.Equal(t, "warning", ScoreColor(79.9))
	assert.Equal(t, "warning", ScoreColor(60))
	assert.Equal(t, "danger", ScoreColor(59))

	assert.Equal(t, "fas fa-trophy", ScoreIcon(95))
	assert.Equal(t, "fas fa-thumbs-up", ScoreIcon(60))
	assert.Equal(t, "fas fa-exclamation-triangle", ScoreIcon(10))
}

func TestIndexContainsElementContract(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Index(&buf, IndexPage{Flash: "Only PDF files are allowed", MaxFileSize: 16 << 20, MaxFileSizeMB: "16", MinDescriptionLength: 100}))

	html := buf.String()
	for _, id := range []string{"resume", "dropzone", "fileInfo", "fileName", "removeFile", "job_description", "jdCounter", "sampleJD", "analyzeForm", "submitBtn", "progressModal", "progressBar", "progressCaption"} {
		assert.Contains(t, html, `id="`+id+`"`, id)
	}
	assert.Contains(t, html, "Only PDF files are allowed")
	assert.Contains(t, html, `data-max-file-size="16777216"`)
	// Inline feedback replaces the browser's own validation bubbles.
	assert.Regexp(t, `<form id="analyzeForm"[^>]*\bnovalidate\b`, html)
	assert.NotContains(t, html, "http-equiv")
}

func TestResultsRendering(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Results(&buf, ResultsPage{
		ID:     "abc",
		Status: "completed",
		Result: &models.AnalysisResult{
			OverallScore:    84.4,
			SkillScore:      70,
			MatchedKeywords: []string{"go", "<script>"},
			Suggestions:     []string{"Add metrics"},
		},
	}))

	html := buf.String()
	assert.Contains(t, html, "84%")
	assert.Contains(t, html, "fas fa-trophy")
	assert.Contains(t, html, "score-reveal")
	assert.Contains(t, html, `class="badge bg-success me-1 mb-1">go<`)
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, `id="downloadPDF"`)
	assert.Contains(t, html, `id="shareResults"`)

	buf.Reset()
	require.NoError(t, r.Results(&buf, ResultsPage{ID: "abc", Status: "queued", Pending: true}))
	assert.Contains(t, buf.String(), `http-equiv="refresh"`)

	buf.Reset()
	require.NoError(t, r.Results(&buf, ResultsPage{ID: "abc", PrintMode: true, Result: &models.AnalysisResult{}}))
	assert.NotContains(t, buf.String(), `id="shareResults"`)
}
