package admin

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/assessly-hq/assessly-services/api/internal/interfaces/http/common"
)

func (h *Handler) statsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		stats, err := h.statsService.Snapshot(ctx)
		if err != nil {
			h.logger.Error("stats snapshot failed", zap.Error(err))
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to collect stats")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildStatsResponse(stats))
	}
}
