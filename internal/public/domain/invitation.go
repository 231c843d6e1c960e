package domain

import "time"

// InvitationStatus tracks a candidate invitation through its life.
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationOpened    InvitationStatus = "opened"
	InvitationSubmitted InvitationStatus = "submitted"
	InvitationExpired   InvitationStatus = "expired"
)

// Invitation links a candidate email to one assessment via an opaque token.
// The token is the only credential a candidate ever holds.
type Invitation struct {
	ID             string
	OrganizationID string
	AssessmentID   string
	CandidateEmail string
	CandidateName  string
	Token          string
	Status         InvitationStatus
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Usable reports whether a candidate may still open or submit against the
// invitation at the given instant.
func (i Invitation) Usable(now time.Time) bool {
	if i.Status == InvitationSubmitted || i.Status == InvitationExpired {
		return false
	}
	return now.Before(i.ExpiresAt)
}
