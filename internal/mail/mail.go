package mail

import "context"

// Message is a single transactional email with text and HTML bodies.
type Message struct {
	FromEmail string
	FromName  string
	ToEmail   string
	ToName    string
	Subject   string
	TextBody  string
	HTMLBody  string
}

// Sender submits a message to a delivery provider. The bool reports whether
// the provider accepted the message; callers decide what a failure means.
type Sender interface {
	Send(ctx context.Context, msg Message) (bool, error)
}
