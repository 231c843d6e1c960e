package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

type contactService struct {
	contacts   ContactRepository
	captcha    CaptchaVerifier
	mailer     Mailer
	salesEmail string
	logger     *zap.Logger
}

// NewContactService builds the contact/demo form use-case.
func NewContactService(contacts ContactRepository, captcha CaptchaVerifier, mailer Mailer, salesEmail string, logger *zap.Logger) ContactService {
	return &contactService{
		contacts:   contacts,
		captcha:    captcha,
		mailer:     mailer,
		salesEmail: strings.TrimSpace(salesEmail),
		logger:     logger,
	}
}

// Submit verifies the CAPTCHA, persists the message, and notifies sales.
// Sales notification failure is logged, not surfaced: the message is safe
// in the inbox collection either way.
func (s *contactService) Submit(ctx context.Context, cmd ContactCommand) (*domain.ContactMessage, error) {
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return nil, invalid("%s", err)
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, invalid("name is required")
	}
	if strings.TrimSpace(cmd.Message) == "" {
		return nil, invalid("message is required")
	}

	if s.captcha != nil && s.captcha.Enabled() {
		ok, err := s.captcha.Verify(ctx, cmd.CaptchaToken, cmd.RemoteIP)
		if err != nil {
			// Fail closed: a broken verifier should not open the form to bots.
			if s.logger != nil {
				s.logger.Warn("captcha verification errored", zap.Error(err))
			}
			return nil, ErrCaptchaRejected
		}
		if !ok {
			return nil, ErrCaptchaRejected
		}
	}

	now := time.Now().UTC()
	message := &domain.ContactMessage{
		Name:      strings.TrimSpace(cmd.Name),
		Email:     email,
		Company:   strings.TrimSpace(cmd.Company),
		Message:   strings.TrimSpace(cmd.Message),
		Status:    domain.ContactNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.contacts.Create(ctx, message); err != nil {
		return nil, err
	}

	if s.mailer != nil && s.mailer.Enabled() && s.salesEmail != "" {
		subject := fmt.Sprintf("New contact message from %s", message.Name)
		body := s.buildSalesEmail(message)
		if err := s.mailer.Send(ctx, s.salesEmail, subject, body); err != nil && s.logger != nil {
			s.logger.Warn("sales notification failed",
				zap.String("contactId", message.ID),
				zap.Error(err),
			)
		}
	}

	return message, nil
}

func (s *contactService) buildSalesEmail(message *domain.ContactMessage) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Name: %s\n", message.Name))
	builder.WriteString(fmt.Sprintf("Email: %s\n", message.Email))
	if message.Company != "" {
		builder.WriteString(fmt.Sprintf("Company: %s\n", message.Company))
	}
	builder.WriteString("\n")
	builder.WriteString(message.Message)
	builder.WriteString("\n")
	return builder.String()
}
