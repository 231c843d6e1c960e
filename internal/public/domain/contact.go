package domain

import "time"

// ContactStatus is the triage state of an inbound contact message.
type ContactStatus string

const (
	ContactNew     ContactStatus = "new"
	ContactHandled ContactStatus = "handled"
)

// ContactMessage is a submission from the marketing contact/demo form.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Company   string
	Message   string
	Status    ContactStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
