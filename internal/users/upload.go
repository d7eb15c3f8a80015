package users

import (
	"fmt"

	"github.com/mcggEz/gradalyze/pkg/formatting"
)

// ValidationError is a locally rejected upload. The message names the
// violated constraint since it is shown to the user verbatim. Validation runs
// before any storage or engine call; a rejected upload has no side effects.
type ValidationError struct {
	Constraint string
	TooLarge   bool
}

func (e *ValidationError) Error() string {
	return e.Constraint
}

var transcriptTypes = map[string]bool{
	"application/pdf": true,
}

var certificateTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/png":  true,
}

// ValidateTranscript checks a transcript upload against the PDF-only type
// rule and the configured size limit.
func ValidateTranscript(email string, size int64, contentType string, maxSize int64) error {
	if email == "" {
		return &ValidationError{Constraint: "email is required"}
	}
	if !transcriptTypes[contentType] {
		return &ValidationError{Constraint: "transcript must be a PDF file"}
	}
	if size > maxSize {
		return &ValidationError{
			Constraint: fmt.Sprintf("transcript exceeds the %s limit", formatting.FormatBytes(maxSize, 0)),
			TooLarge:   true,
		}
	}
	return nil
}

// ValidateCertificate checks a certificate upload against the allowed
// document and image types and the configured size limit.
func ValidateCertificate(email, filename string, size int64, contentType string, maxSize int64) error {
	if email == "" {
		return &ValidationError{Constraint: "email is required"}
	}
	if !certificateTypes[contentType] {
		return &ValidationError{
			Constraint: fmt.Sprintf("%s: certificates must be PDF, DOC, DOCX, JPEG, or PNG", filename),
		}
	}
	if size > maxSize {
		return &ValidationError{
			Constraint: fmt.Sprintf("%s exceeds the %s limit", filename, formatting.FormatBytes(maxSize, 0)),
			TooLarge:   true,
		}
	}
	return nil
}
