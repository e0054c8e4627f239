package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt asks for a job fit analysis of a résumé against a job description.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an expert technical recruiter comparing a candidate's resume with a job description.

JOB DESCRIPTION:
%s

CANDIDATE RESUME:
%s

Your task is to measure how well the resume fits the job description.

Score the following on a 0-100 scale:
1. Skill Match (Weight: 50%%) - Overlap between the skills and tools required and those shown in the resume
2. Role Alignment (Weight: 30%%) - How closely past titles and responsibilities match the role
3. Experience Fit (Weight: 20%%) - Years and depth of experience against what the role asks for

Return your response in the following JSON format:
{
  "overall_score": <weighted score 0-100>,
  "skill_score": <0-100>,
  "role_score": <0-100>,
  "experience_score": <0-100>,
  "matched_keywords": [<keywords present in both documents>],
  "missing_keywords": [<important job description keywords absent from the resume>],
  "suggestions": [<3-6 concrete improvements to the resume for this job>],
  "resume_keywords": [<up to 20 key skills found in the resume>],
  "jd_keywords": [<up to 20 key skills found in the job description>]
}

Use lowercase keywords. Be objective and base every score on the text provided.`,
		jobDescription, resumeText)
}
