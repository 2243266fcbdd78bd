package leads

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

var allowedResumeExts = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// createForm is the multipart payload for public lead submission. The resume
// file part is validated separately in validateResume.
type createForm struct {
	FirstName string `form:"first_name" binding:"required"`
	LastName  string `form:"last_name" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
}

var formFieldNames = map[string]string{
	"FirstName": "first_name",
	"LastName":  "last_name",
	"Email":     "email",
}

// bindErrors maps validator failures to per-field messages.
func bindErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": "invalid request body"}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := formFieldNames[fe.Field()]
		if field == "" {
			field = strings.ToLower(fe.Field())
		}
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "email":
			out[field] = "Enter a valid email address."
		default:
			out[field] = "Invalid value."
		}
	}
	return out
}

// validateResume enforces the accepted extensions and the size cap.
func validateResume(fileName string, sizeBytes, maxBytes int64) map[string]string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedResumeExts[ext]; !ok {
		return map[string]string{"resume": "File extension not allowed. Allowed extensions: pdf, doc, docx."}
	}
	if sizeBytes > maxBytes {
		return resumeSizeError(maxBytes)
	}
	return nil
}

func resumeSizeError(maxBytes int64) map[string]string {
	return map[string]string{"resume": fmt.Sprintf("Resume file size must be under %dMB.", maxBytes>>20)}
}
