package services

import "errors"

var (
	// ErrNoPDFText means the PDF has no extractable text, usually a scan.
	ErrNoPDFText = errors.New("no text content found in PDF")

	ErrEmptyResponse = errors.New("no text content in response")
)
