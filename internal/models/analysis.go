package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

// Pending reports whether the worker has not finished with the analysis yet.
func (s AnalysisStatus) Pending() bool {
	return s == StatusQueued || s == StatusProcessing
}

type Analysis struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeDocumentID uuid.UUID      `gorm:"type:uuid;not null" json:"resume_document_id"`
	JobDescription   string         `gorm:"type:text;not null" json:"job_description"`
	Status           AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`
	OverallScore     *float64       `gorm:"type:decimal(5,2)" json:"overall_score,omitempty"`
	SkillScore       *float64       `gorm:"type:decimal(5,2)" json:"skill_score,omitempty"`
	RoleScore        *float64       `gorm:"type:decimal(5,2)" json:"role_score,omitempty"`
	ExperienceScore  *float64       `gorm:"type:decimal(5,2)" json:"experience_score,omitempty"`
	MatchedKeywords  []string       `gorm:"serializer:json;type:jsonb" json:"matched_keywords,omitempty"`
	MissingKeywords  []string       `gorm:"serializer:json;type:jsonb" json:"missing_keywords,omitempty"`
	Suggestions      []string       `gorm:"serializer:json;type:jsonb" json:"suggestions,omitempty"`
	ResumeKeywords   []string       `gorm:"serializer:json;type:jsonb" json:"resume_keywords,omitempty"`
	JDKeywords       []string       `gorm:"serializer:json;type:jsonb" json:"jd_keywords,omitempty"`
	ErrorMessage     *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}
