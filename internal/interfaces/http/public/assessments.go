package public

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/assessly-hq/assessly-services/api/internal/interfaces/http/common"
	publicapp "github.com/assessly-hq/assessly-services/api/internal/public/application"
)

func (h *Handler) assessmentListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := h.requireUser(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		filter := publicapp.AssessmentFilter{
			Status:  strings.TrimSpace(query.Get("status")),
			Keyword: strings.TrimSpace(query.Get("q")),
		}
		paging := publicapp.Paging{}
		paging.Page, _ = common.ParsePositiveInt(query.Get("page"), 1)
		paging.Limit, _ = common.ParsePositiveInt(query.Get("limit"), 20)

		assessments, err := h.assessments.List(ctx, user.OrganizationID, filter, paging)
		if err != nil {
			h.writeServiceError(w, err, "assessment list")
			return
		}

		items := make([]assessmentResponse, 0, len(assessments))
		for i := range assessments {
			items = append(items, buildAssessmentResponse(&assessments[i]))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, assessmentListResponse{
			Items: items,
			Page:  paging.Page,
			Limit: paging.Limit,
			Count: len(items),
		})
	}
}

func (h *Handler) assessmentCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := h.requireUser(w, r)
		if !ok {
			return
		}

		var req assessmentRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}

		assessment, err := h.assessments.Create(ctx, buildUpsertCommand(user, req))
		if err != nil {
			h.writeServiceError(w, err, "assessment create")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildAssessmentResponse(assessment))
	}
}

func (h *Handler) assessmentDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := h.requireUser(w, r)
		if !ok {
			return
		}

		assessment, err := h.assessments.Detail(ctx, user.OrganizationID, chi.URLParam(r, "id"))
		if err != nil {
			h.writeServiceError(w, err, "assessment detail")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildAssessmentResponse(assessment))
	}
}

func (h *Handler) assessmentUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := h.requireUser(w, r)
		if !ok {
			return
		}

		var req assessmentRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}

		assessment, err := h.assessments.Update(ctx, user.OrganizationID, chi.URLParam(r, "id"), buildUpsertCommand(user, req))
		if err != nil {
			h.writeServiceError(w, err, "assessment update")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildAssessmentResponse(assessment))
	}
}

func (h *Handler) assessmentDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := h.requireUser(w, r)
		if !ok {
			return
		}

		if err := h.assessments.Delete(ctx, user.OrganizationID, chi.URLParam(r, "id")); err != nil {
			h.writeServiceError(w, err, "assessment delete")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) assessmentPublishHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := h.requireUser(w, r)
		if !ok {
			return
		}

		assessment, err := h.assessments.Publish(ctx, user.OrganizationID, chi.URLParam(r, "id"))
		if err != nil {
			h.writeServiceError(w, err, "assessment publish")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildAssessmentResponse(assessment))
	}
}

func (h *Handler) searchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := h.requireUser(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		paging := publicapp.Paging{}
		paging.Page, _ = common.ParsePositiveInt(query.Get("page"), 1)
		paging.Limit, _ = common.ParsePositiveInt(query.Get("limit"), 20)

		assessments, err := h.assessments.Search(ctx, user.OrganizationID, query.Get("q"), paging)
		if err != nil {
			h.writeServiceError(w, err, "assessment search")
			return
		}

		items := make([]assessmentResponse, 0, len(assessments))
		for i := range assessments {
			items = append(items, buildAssessmentResponse(&assessments[i]))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, assessmentListResponse{
			Items: items,
			Page:  paging.Page,
			Limit: paging.Limit,
			Count: len(items),
		})
	}
}

func buildUpsertCommand(user common.AuthenticatedUser, req assessmentRequest) publicapp.UpsertAssessmentCommand {
	questions := make([]publicapp.QuestionCommand, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, publicapp.QuestionCommand{
			ID:         q.ID,
			Text:       q.Text,
			Type:       q.Type,
			Options:    q.Options,
			Required:   q.Required,
			Keywords:   q.Keywords,
			LengthNorm: q.LengthNorm,
		})
	}
	return publicapp.UpsertAssessmentCommand{
		OrganizationID:  user.OrganizationID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Status:          req.Status,
		Questions:       questions,
		CreatedBy:       user.ID,
	}
}
