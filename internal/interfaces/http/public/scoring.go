package public

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/assessly-hq/assessly-services/api/internal/interfaces/http/common"
	"github.com/assessly-hq/assessly-services/api/internal/scoring"
)

// scoreHandler grades a single free-text answer against its question's
// scoring hints. The dashboard uses it for live preview while authoring.
func (h *Handler) scoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		user, ok := h.requireUser(w, r)
		if !ok {
			return
		}

		var req scoreRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.AssessmentID) == "" || strings.TrimSpace(req.QuestionID) == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "assessmentId and questionId are required")
			return
		}

		assessment, err := h.assessments.Detail(ctx, user.OrganizationID, req.AssessmentID)
		if err != nil {
			h.writeServiceError(w, err, "score lookup")
			return
		}
		question := assessment.TextQuestion(req.QuestionID)
		if question == nil {
			common.WriteError(h.logger, w, http.StatusNotFound, "no such text question")
			return
		}

		result := h.scorer.Score(ctx, scoring.Input{
			AssessmentID: assessment.ID,
			QuestionID:   question.ID,
			Text:         req.Text,
			Keywords:     question.Keywords,
			LengthNorm:   question.LengthNorm,
		})
		common.WriteJSON(h.logger, w, http.StatusOK, result)
	}
}
