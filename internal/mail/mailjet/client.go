package mailjet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/KarimovMurodilla/lead-management-system/internal/mail"
)

const defaultBaseURL = "https://api.mailjet.com"

// Client sends mail through the Mailjet v3.1 send API.
type Client struct {
	baseURL   string
	apiKey    string
	secretKey string
	http      *http.Client
}

// NewClient constructs a Mailjet client. baseURL may be empty for production.
func NewClient(apiKey, secretKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		secretKey: secretKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

type party struct {
	Email string `json:"Email"`
	Name  string `json:"Name,omitempty"`
}

type message struct {
	From     party   `json:"From"`
	To       []party `json:"To"`
	Subject  string  `json:"Subject"`
	TextPart string  `json:"TextPart,omitempty"`
	HTMLPart string  `json:"HTMLPart,omitempty"`
}

type sendRequest struct {
	Messages []message `json:"Messages"`
}

// Send submits the message and reports whether Mailjet accepted it.
func (c *Client) Send(ctx context.Context, msg mail.Message) (bool, error) {
	payload := sendRequest{
		Messages: []message{{
			From:     party{Email: msg.FromEmail, Name: msg.FromName},
			To:       []party{{Email: msg.ToEmail, Name: msg.ToName}},
			Subject:  msg.Subject,
			TextPart: msg.TextBody,
			HTMLPart: msg.HTMLBody,
		}},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("marshal send request: %w", err)
	}

	url := fmt.Sprintf("%s/v3.1/send", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("mailjet request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return false, fmt.Errorf("mailjet send failed (status %d): %s", resp.StatusCode, string(body))
	}

	return true, nil
}
