package models

// AnalysisResult is what the external analysis engine returns.
type AnalysisResult struct {
	OverallScore    float64  `json:"overall_score"`
	SkillScore      float64  `json:"skill_score"`
	RoleScore       float64  `json:"role_score"`
	ExperienceScore float64  `json:"experience_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	Suggestions     []string `json:"suggestions"`
	ResumeKeywords  []string `json:"resume_keywords"`
	JDKeywords      []string `json:"jd_keywords"`
}

type AnalyzeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Result       *AnalysisResult `json:"result,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
}

// ResultFrom copies the stored scores of a completed analysis.
func ResultFrom(a *Analysis) *AnalysisResult {
	deref := func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	}

	return &AnalysisResult{
		OverallScore:    deref(a.OverallScore),
		SkillScore:      deref(a.SkillScore),
		RoleScore:       deref(a.RoleScore),
		ExperienceScore: deref(a.ExperienceScore),
		MatchedKeywords: a.MatchedKeywords,
		MissingKeywords: a.MissingKeywords,
		Suggestions:     a.Suggestions,
		ResumeKeywords:  a.ResumeKeywords,
		JDKeywords:      a.JDKeywords,
	}
}
