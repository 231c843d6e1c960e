package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/assessly-hq/assessly-services/api/internal/billing"
	publicapp "github.com/assessly-hq/assessly-services/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger        *zap.Logger
	auth          publicapp.AuthService
	assessments   publicapp.AssessmentService
	invitations   publicapp.InvitationService
	responses     publicapp.ResponseService
	contacts      publicapp.ContactService
	scorer        publicapp.Scorer
	billingClient *billing.ProviderClient
	billingSyncer *billing.Syncer
	webhookSecret []byte
	dashboardURL  string
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger        *zap.Logger
	Auth          publicapp.AuthService
	Assessments   publicapp.AssessmentService
	Invitations   publicapp.InvitationService
	Responses     publicapp.ResponseService
	Contacts      publicapp.ContactService
	Scorer        publicapp.Scorer
	BillingClient *billing.ProviderClient
	BillingSyncer *billing.Syncer
	WebhookSecret []byte
	DashboardURL  string
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:        cfg.Logger,
		auth:          cfg.Auth,
		assessments:   cfg.Assessments,
		invitations:   cfg.Invitations,
		responses:     cfg.Responses,
		contacts:      cfg.Contacts,
		scorer:        cfg.Scorer,
		billingClient: cfg.BillingClient,
		billingSyncer: cfg.BillingSyncer,
		webhookSecret: cfg.WebhookSecret,
		dashboardURL:  cfg.DashboardURL,
	}
}

// Register mounts all public routes onto the router. Candidate-facing
// routes (invitations, responses), the contact form and the billing
// webhook are unauthenticated; everything else requires a bearer token.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/auth/register", h.registerHandler())
	r.Post("/auth/login", h.loginHandler())
	r.With(authMiddleware).Get("/auth/verify", h.authVerifyHandler())

	r.With(authMiddleware).Get("/assessments", h.assessmentListHandler())
	r.With(authMiddleware).Post("/assessments", h.assessmentCreateHandler())
	r.With(authMiddleware).Get("/assessments/{id}", h.assessmentDetailHandler())
	r.With(authMiddleware).Patch("/assessments/{id}", h.assessmentUpdateHandler())
	r.With(authMiddleware).Delete("/assessments/{id}", h.assessmentDeleteHandler())
	r.With(authMiddleware).Post("/assessments/{id}/publish", h.assessmentPublishHandler())
	r.With(authMiddleware).Get("/search", h.searchHandler())
	r.With(authMiddleware).Post("/assessments/{id}/invitations", h.invitationCreateHandler())

	r.Get("/invitations/{token}", h.invitationOpenHandler())
	r.Post("/invitations/{token}/responses", h.responseSubmitHandler())

	r.With(authMiddleware).Post("/score", h.scoreHandler())
	r.Post("/contact", h.contactHandler())

	r.With(authMiddleware).Post("/billing/checkout", h.billingCheckoutHandler())
	r.With(authMiddleware).Post("/billing/portal", h.billingPortalHandler())
	r.Post("/billing/webhook", h.billingWebhookHandler())
}
