package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FailureStore keeps a record of messages that could not be delivered so an
// operator can replay them. The mongo implementation writes into the
// failed_notifications collection.
type FailureStore interface {
	RecordFailure(ctx context.Context, target, recipient, subject string, sendErr error, attempts int)
}

// Mailer sends transactional email over SMTP with a bounded retry. A Mailer
// without an SMTP address is disabled; sends then fail fast so callers can
// decide whether that is fatal for their flow.
type Mailer struct {
	addr     string
	from     string
	username string
	password string
	store    FailureStore
	logger   *zap.Logger

	// sendFunc is swapped in tests.
	sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

const (
	sendAttempts = 3
	retryDelay   = 200 * time.Millisecond
)

// New builds a Mailer. store may be nil, which disables failure persistence.
func New(addr, from, username, password string, store FailureStore, logger *zap.Logger) *Mailer {
	return &Mailer{
		addr:     strings.TrimSpace(addr),
		from:     strings.TrimSpace(from),
		username: username,
		password: password,
		store:    store,
		logger:   logger,
		sendFunc: smtp.SendMail,
	}
}

// Enabled reports whether an SMTP endpoint is configured.
func (m *Mailer) Enabled() bool {
	return m != nil && m.addr != ""
}

// Send delivers one plain-text message, retrying transient failures. The
// final failure is persisted through the FailureStore and returned.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if !m.Enabled() {
		return errors.New("smtp is not configured")
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return errors.New("recipient is required")
	}

	msg := m.buildMessage(to, subject, body)
	auth := m.auth()

	var lastErr error
	for attempt := 0; attempt < sendAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		if err := m.sendFunc(m.addr, auth, m.from, []string{to}, msg); err != nil {
			lastErr = err
			if m.logger != nil {
				m.logger.Warn("mail send attempt failed",
					zap.String("to", to),
					zap.Int("attempt", attempt+1),
					zap.Error(err),
				)
			}
			time.Sleep(retryDelay)
			continue
		}
		return nil
	}

	if m.store != nil {
		m.store.RecordFailure(ctx, "email", to, subject, lastErr, sendAttempts)
	}
	return lastErr
}

func (m *Mailer) auth() smtp.Auth {
	if strings.TrimSpace(m.username) == "" {
		return nil
	}
	host := m.addr
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return smtp.PlainAuth("", m.username, m.password, host)
}

func (m *Mailer) buildMessage(to, subject, body string) []byte {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", to))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", strings.ReplaceAll(subject, "\r\n", " ")))
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(body)
	return []byte(builder.String())
}
