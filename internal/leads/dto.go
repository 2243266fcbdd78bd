package leads

import "time"

// LeadResponse is the outward-facing representation of a lead.
type LeadResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	ResumeURL *string   `json:"resume_url"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// toResponse shapes a lead for API responses. baseURL is the serving host
// (scheme://host) the resume URL is resolved against; resume_url is null
// when the lead has no stored resume.
func toResponse(lead Lead, baseURL string) LeadResponse {
	var resumeURL *string
	if lead.ResumeKey != "" && baseURL != "" {
		u := baseURL + "/media/" + lead.ResumeKey
		resumeURL = &u
	}
	return LeadResponse{
		ID:        lead.ID,
		FirstName: lead.FirstName,
		LastName:  lead.LastName,
		Email:     lead.Email,
		ResumeURL: resumeURL,
		Status:    lead.Status,
		CreatedAt: lead.CreatedAt,
		UpdatedAt: lead.UpdatedAt,
	}
}
