package public

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/assessly-hq/assessly-services/api/internal/interfaces/http/common"
	publicapp "github.com/assessly-hq/assessly-services/api/internal/public/application"
)

// decodeJSON reads a JSON request body into dst with a bad-request reply on
// failure. Returns false when the handler should stop.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.WriteError(h.logger, w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

// requireUser pulls the authenticated principal out of the context. The auth
// middleware always sets it; a miss means the route is miswired.
func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (common.AuthenticatedUser, bool) {
	user, ok := common.UserFromContext(r.Context())
	if !ok {
		common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to resolve authenticated user")
		return common.AuthenticatedUser{}, false
	}
	return user, true
}

// writeServiceError maps application sentinel errors onto HTTP statuses.
// Anything unmapped is logged and reported as a generic 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, publicapp.ErrNotFound):
		common.WriteError(h.logger, w, http.StatusNotFound, "not found")
	case errors.Is(err, publicapp.ErrEmailTaken):
		common.WriteError(h.logger, w, http.StatusConflict, err.Error())
	case errors.Is(err, publicapp.ErrInvalidCredentials):
		common.WriteError(h.logger, w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, publicapp.ErrInvitationUnusable):
		common.WriteError(h.logger, w, http.StatusGone, err.Error())
	case errors.Is(err, publicapp.ErrAssessmentInactive):
		common.WriteError(h.logger, w, http.StatusConflict, err.Error())
	case errors.Is(err, publicapp.ErrCaptchaRejected):
		common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
	case errors.Is(err, publicapp.ErrInvalidInput):
		common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", zap.String("operation", operation), zap.Error(err))
		common.WriteError(h.logger, w, http.StatusInternalServerError, "internal server error")
	}
}
