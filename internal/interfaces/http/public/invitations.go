package public

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/assessly-hq/assessly-services/api/internal/interfaces/http/common"
	publicapp "github.com/assessly-hq/assessly-services/api/internal/public/application"
)

func (h *Handler) invitationCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		user, ok := h.requireUser(w, r)
		if !ok {
			return
		}

		var req inviteRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}

		invitation, err := h.invitations.Invite(ctx, publicapp.InviteCommand{
			OrganizationID: user.OrganizationID,
			AssessmentID:   chi.URLParam(r, "id"),
			CandidateEmail: req.CandidateEmail,
			CandidateName:  req.CandidateName,
			InvitedBy:      user.ID,
		})
		if err != nil {
			h.writeServiceError(w, err, "invitation create")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildInvitationResponse(invitation))
	}
}

// invitationOpenHandler is candidate-facing: the token in the path is the
// only credential.
func (h *Handler) invitationOpenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		invitation, assessment, err := h.invitations.Open(ctx, chi.URLParam(r, "token"))
		if err != nil {
			h.writeServiceError(w, err, "invitation open")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, invitationOpenResponse{
			Invitation: buildInvitationResponse(invitation),
			Assessment: buildCandidateAssessmentResponse(assessment),
		})
	}
}
