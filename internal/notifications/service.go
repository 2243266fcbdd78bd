package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/KarimovMurodilla/lead-management-system/internal/leads"
	"github.com/KarimovMurodilla/lead-management-system/internal/mail"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/metrics"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/telemetry"
)

const submittedTimeLayout = "2006-01-02 15:04:05"

// Config fixes the sender identity and the internal alert recipient.
type Config struct {
	FromEmail     string
	FromName      string
	AttorneyEmail string
}

// Service sends the two lead-submission emails. Delivery is best-effort:
// each email gets at most one attempt, failures are logged and absorbed.
type Service struct {
	Sender mail.Sender
	Cfg    Config
}

func NewService(sender mail.Sender, cfg Config) *Service {
	return &Service{Sender: sender, Cfg: cfg}
}

// LeadCreated attempts both notifications for a persisted lead. It never
// reports failure to the caller; the create flow's success is defined by
// persistence alone.
func (s *Service) LeadCreated(ctx context.Context, lead leads.Lead) {
	s.attempt(ctx, "prospect_confirmation", lead, s.SendProspectConfirmation)
	s.attempt(ctx, "attorney_notification", lead, s.SendAttorneyNotification)
}

func (s *Service) attempt(ctx context.Context, kind string, lead leads.Lead, send func(context.Context, leads.Lead) (bool, error)) {
	start := time.Now()
	ok, err := send(ctx, lead)
	metrics.ObserveEmailSendDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	if err != nil || !ok {
		metrics.IncEmailFailed()
		fields := map[string]any{
			"kind":    kind,
			"lead_id": lead.ID,
		}
		if err != nil {
			fields["err"] = err.Error()
		}
		telemetry.Error("notifications.send_failed", fields)
		return
	}
	metrics.IncEmailSent()
	telemetry.Info("notifications.sent", map[string]any{
		"kind":    kind,
		"lead_id": lead.ID,
	})
}

// SendProspectConfirmation emails the applicant that their submission was received.
func (s *Service) SendProspectConfirmation(ctx context.Context, lead leads.Lead) (bool, error) {
	if s.Sender == nil {
		return false, fmt.Errorf("mail sender not configured")
	}

	fullName := lead.FirstName + " " + lead.LastName
	text := fmt.Sprintf(`Dear %s,

Thank you for submitting your application. We have received your resume and will review it shortly.

Our team will contact you within 2-3 business days regarding next steps.

Best regards,
%s
`, fullName, s.Cfg.FromName)
	html := fmt.Sprintf(`<h3>Dear %s,</h3>
<p>Thank you for submitting your application. We have received your resume and will review it shortly.</p>
<p>Our team will contact you within 2-3 business days regarding next steps.</p>
<p>Best regards,<br/>%s</p>`, fullName, s.Cfg.FromName)

	return s.Sender.Send(ctx, mail.Message{
		FromEmail: s.Cfg.FromEmail,
		FromName:  s.Cfg.FromName,
		ToEmail:   lead.Email,
		ToName:    fullName,
		Subject:   "Thank you for your application",
		TextBody:  text,
		HTMLBody:  html,
	})
}

// SendAttorneyNotification emails the configured internal recipient about a new lead.
func (s *Service) SendAttorneyNotification(ctx context.Context, lead leads.Lead) (bool, error) {
	if s.Sender == nil {
		return false, fmt.Errorf("mail sender not configured")
	}
	if s.Cfg.AttorneyEmail == "" {
		return false, fmt.Errorf("attorney email not configured")
	}

	fullName := lead.FirstName + " " + lead.LastName
	submitted := lead.CreatedAt.Format(submittedTimeLayout)
	text := fmt.Sprintf(`New lead submission received:

Name: %s
Email: %s
Submitted: %s
Status: %s

Please log in to the system to review the complete application and resume.
`, fullName, lead.Email, submitted, lead.Status)
	html := fmt.Sprintf(`<h3>New lead submission received:</h3>
<ul>
    <li><strong>Name:</strong> %s</li>
    <li><strong>Email:</strong> %s</li>
    <li><strong>Submitted:</strong> %s</li>
    <li><strong>Status:</strong> %s</li>
</ul>
<p>Please log in to the system to review the complete application and resume.</p>`, fullName, lead.Email, submitted, lead.Status)

	return s.Sender.Send(ctx, mail.Message{
		FromEmail: s.Cfg.FromEmail,
		FromName:  "Lead Management System",
		ToEmail:   s.Cfg.AttorneyEmail,
		ToName:    "Attorney",
		Subject:   fmt.Sprintf("New Lead: %s", fullName),
		TextBody:  text,
		HTMLBody:  html,
	})
}
