package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDocument is the MongoDB schema for dashboard accounts. PasswordHash
// carries the bcrypt hash and is never serialized to JSON anywhere.
type UserDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	OrganizationID primitive.ObjectID `bson:"organizationId"`
	Email          string             `bson:"email"`
	Name           string             `bson:"name,omitempty"`
	PasswordHash   string             `bson:"passwordHash"`
	Role           string             `bson:"role"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

// OrganizationDocument is the MongoDB schema for tenants. The subscription
// fields are overwritten wholesale by webhook sync.
type OrganizationDocument struct {
	ID                 primitive.ObjectID `bson:"_id"`
	Name               string             `bson:"name"`
	Plan               string             `bson:"plan,omitempty"`
	SubscriptionStatus string             `bson:"subscriptionStatus,omitempty"`
	SubscriptionID     string             `bson:"subscriptionId,omitempty"`
	CurrentPeriodEnd   *time.Time         `bson:"currentPeriodEnd,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
}

// QuestionDocument is embedded in an assessment document.
type QuestionDocument struct {
	ID         string   `bson:"id"`
	Text       string   `bson:"text"`
	Type       string   `bson:"type"`
	Options    []string `bson:"options,omitempty"`
	Required   bool     `bson:"required,omitempty"`
	Keywords   []string `bson:"keywords,omitempty"`
	LengthNorm int      `bson:"lengthNorm,omitempty"`
}

// AssessmentDocument is the MongoDB schema for assessments.
type AssessmentDocument struct {
	ID              primitive.ObjectID `bson:"_id"`
	OrganizationID  primitive.ObjectID `bson:"organizationId"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description,omitempty"`
	DurationMinutes int                `bson:"durationMinutes,omitempty"`
	Status          string             `bson:"status"`
	Questions       []QuestionDocument `bson:"questions"`
	CreatedBy       string             `bson:"createdBy,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

// InvitationDocument is the MongoDB schema for candidate invitations.
type InvitationDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	OrganizationID primitive.ObjectID `bson:"organizationId"`
	AssessmentID   primitive.ObjectID `bson:"assessmentId"`
	CandidateEmail string             `bson:"candidateEmail"`
	CandidateName  string             `bson:"candidateName,omitempty"`
	Token          string             `bson:"token"`
	Status         string             `bson:"status"`
	ExpiresAt      time.Time          `bson:"expiresAt"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

// AnswerDocument is embedded in a response document. Score fields are a
// snapshot of the scorer output at submission time.
type AnswerDocument struct {
	QuestionID     string   `bson:"questionId"`
	Text           string   `bson:"text,omitempty"`
	SelectedOption string   `bson:"selectedOption,omitempty"`
	Score          *int     `bson:"score,omitempty"`
	Feedback       []string `bson:"feedback,omitempty"`
	Confidence     *float64 `bson:"confidence,omitempty"`
}

// ResponseDocument is the MongoDB schema for candidate submissions.
type ResponseDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	OrganizationID primitive.ObjectID `bson:"organizationId"`
	AssessmentID   primitive.ObjectID `bson:"assessmentId"`
	InvitationID   primitive.ObjectID `bson:"invitationId"`
	CandidateEmail string             `bson:"candidateEmail"`
	Answers        []AnswerDocument   `bson:"answers"`
	TotalScore     int                `bson:"totalScore"`
	SubmittedAt    time.Time          `bson:"submittedAt"`
}

// ContactMessageDocument is the MongoDB schema for contact-form messages.
type ContactMessageDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Company   string             `bson:"company,omitempty"`
	Message   string             `bson:"message"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}
