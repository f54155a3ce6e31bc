package service

import (
	"context"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/msomdec/waitlist-backend/internal/domain"
)

// User-facing result messages, matching the waitlist frontend copy.
const (
	MessageWelcome       = "Welkom op de wachtlijst! Houd je inbox in de gaten."
	MessageAlreadyListed = "Je staat al op de wachtlijst. We sturen je updates zodra ze er zijn."
)

// SubscribeResult is the outcome of a successful signup.
type SubscribeResult struct {
	Success bool
	Message string
	Created bool
}

// SignupService owns the signup workflow: validate, upsert, notify.
type SignupService struct {
	signups domain.SignupRepository
	mailer  domain.Mailer
}

// NewSignupService creates a new SignupService.
func NewSignupService(signups domain.SignupRepository, mailer domain.Mailer) *SignupService {
	return &SignupService{signups: signups, mailer: mailer}
}

// Subscribe adds name/email to the waiting list, overwriting the name
// when the email is already listed, then sends the confirmation email.
// A mail failure does not undo the committed row: persistence and
// notification are independent outcomes, and the provider error
// propagates unchanged for the handler to surface.
func (s *SignupService) Subscribe(ctx context.Context, name, email, productName string) (*SubscribeResult, error) {
	if err := validateSignup(name, email); err != nil {
		return nil, err
	}

	signup := &domain.Signup{Name: name, Email: email}
	created, err := s.signups.Upsert(ctx, signup)
	if err != nil {
		return nil, fmt.Errorf("upsert signup: %w", err)
	}

	message := MessageAlreadyListed
	if created {
		message = MessageWelcome
	}

	if err := s.mailer.Send(ctx, name, email, productName); err != nil {
		return nil, err
	}

	return &SubscribeResult{Success: true, Message: message, Created: created}, nil
}

func validateSignup(name, email string) error {
	if n := utf8.RuneCountInString(name); n < 1 || n > 255 {
		return fmt.Errorf("%w: name must be 1-255 characters", domain.ErrInvalidInput)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email address is not valid", domain.ErrInvalidInput)
	}

	return nil
}
