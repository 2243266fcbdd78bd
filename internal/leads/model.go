package leads

import "time"

// Lead statuses.
const (
	StatusPending    = "PENDING"
	StatusReachedOut = "REACHED_OUT"
)

// ValidStatus reports whether s is one of the defined lead statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusReachedOut
}

// Lead represents a job-applicant submission.
type Lead struct {
	ID         int64
	FirstName  string
	LastName   string
	Email      string
	ResumeKey  string
	ResumeName string
	ResumeSize int64
	ResumeMime string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
