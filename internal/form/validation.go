package form

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// MaxFileSize is the largest résumé upload accepted (16 MiB).
	MaxFileSize int64 = 16 * 1024 * 1024

	// MinDescriptionLength is the minimum trimmed job description length.
	MinDescriptionLength = 100

	pdfMIMEType = "application/pdf"
)

var (
	ErrNotPDF              = errors.New("only PDF files are allowed")
	ErrFileTooLarge        = errors.New("file size exceeds the limit")
	ErrNoFile              = errors.New("please select a resume file")
	ErrDescriptionRequired = errors.New("please enter a job description")
	ErrDescriptionTooShort = errors.New("job description seems too short, please provide more details for accurate analysis")
	ErrSubmitInProgress    = errors.New("analysis already in progress")
	ErrDragAndDropDisabled = errors.New("drag and drop is disabled")
)

// FileHandle is what the host hands over for a chosen file.
type FileHandle struct {
	Name     string
	Size     int64
	MimeType string
}

// ValidateFile checks the content type first and the size second.
// With strictMIME the type must be exactly application/pdf, otherwise any
// type containing "pdf" passes, and a missing type falls back to the extension.
func ValidateFile(f FileHandle, strictMIME bool, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}

	if !isPDF(f, strictMIME) {
		return ErrNotPDF
	}

	if f.Size > maxSize {
		return &SizeLimitError{Size: f.Size, Limit: maxSize}
	}

	return nil
}

func isPDF(f FileHandle, strictMIME bool) bool {
	mime := strings.ToLower(strings.TrimSpace(f.MimeType))
	if strictMIME {
		return mime == pdfMIMEType
	}
	if mime != "" {
		return strings.Contains(mime, "pdf")
	}
	return strings.EqualFold(filepath.Ext(f.Name), ".pdf")
}

// ValidateDescription applies the submission rules to the job description.
// Length is measured in characters after trimming surrounding whitespace.
func ValidateDescription(text string, minLen int) error {
	if minLen <= 0 {
		minLen = MinDescriptionLength
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrDescriptionRequired
	}

	if utf8.RuneCountInString(trimmed) < minLen {
		return ErrDescriptionTooShort
	}

	return nil
}

// SizeLimitError is returned for files over the limit. It matches ErrFileTooLarge.
type SizeLimitError struct {
	Size  int64
	Limit int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("file size %d exceeds the %sMB limit", e.Size, formatLimitMB(e.Limit))
}

func (e *SizeLimitError) Is(target error) bool {
	return target == ErrFileTooLarge
}

// formatLimitMB prints a limit in megabytes without trailing zeros, 16 MiB as "16".
func formatLimitMB(size int64) string {
	mb := float64(size) / 1024 / 1024
	return strconv.FormatFloat(math.Round(mb*100)/100, 'f', -1, 64)
}

// FormatSizeMB renders a byte count as megabytes with two decimals.
func FormatSizeMB(size int64) string {
	return fmt.Sprintf("%.2f", float64(size)/1024/1024)
}
