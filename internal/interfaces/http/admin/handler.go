package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminapp "github.com/assessly-hq/assessly-services/api/internal/admin/application"
	"github.com/assessly-hq/assessly-services/api/internal/interfaces/http/common"
	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger         *zap.Logger
	statsService   adminapp.StatsService
	contactService adminapp.ContactService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger         *zap.Logger
	StatsService   adminapp.StatsService
	ContactService adminapp.ContactService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:         cfg.Logger,
		statsService:   cfg.StatsService,
		contactService: cfg.ContactService,
	}
}

// Register mounts admin routes onto router. The caller stacks the auth
// middleware; requireAdmin adds the role gate on top.
func (h *Handler) Register(r chi.Router) {
	r.Use(h.requireAdmin)
	r.Get("/stats", h.statsHandler())
	r.Get("/contacts", h.contactListHandler())
	r.Patch("/contacts/{id}", h.contactUpdateHandler())
}

// requireAdmin rejects authenticated principals without the platform
// operator role.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}
		if user.Role != string(domain.RoleAdmin) {
			common.WriteError(h.logger, w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
