package domain

import (
	"context"
	"fmt"
)

// Mailer sends the waitlist confirmation email. Implementations wrap a
// transactional-email provider; a nil error means the provider accepted
// the message.
type Mailer interface {
	Send(ctx context.Context, name, email, productName string) error
}

// ProviderError is returned when the email provider rejects a send.
// StatusCode is the HTTP status reported by (or attributed to) the
// provider and is surfaced to the API caller unchanged.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("mail provider error (status %d): %s", e.StatusCode, e.Message)
}
