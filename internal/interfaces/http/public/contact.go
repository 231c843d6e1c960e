package public

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/assessly-hq/assessly-services/api/internal/interfaces/http/common"
	publicapp "github.com/assessly-hq/assessly-services/api/internal/public/application"
)

func (h *Handler) contactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		var req contactRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}

		_, err := h.contacts.Submit(ctx, publicapp.ContactCommand{
			Name:         req.Name,
			Email:        req.Email,
			Company:      req.Company,
			Message:      req.Message,
			CaptchaToken: req.CaptchaToken,
			RemoteIP:     remoteIP(r),
		})
		if err != nil {
			h.writeServiceError(w, err, "contact submit")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, map[string]string{"status": "received"})
	}
}

// remoteIP trusts the middleware.RealIP-rewritten RemoteAddr.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
