package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminapp "github.com/assessly-hq/assessly-services/api/internal/admin/application"
	"github.com/assessly-hq/assessly-services/api/internal/interfaces/http/common"
	publicapp "github.com/assessly-hq/assessly-services/api/internal/public/application"
)

func (h *Handler) contactListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		query := r.URL.Query()
		filter := adminapp.ContactFilter{Status: strings.TrimSpace(query.Get("status"))}
		paging := adminapp.Paging{}
		paging.Page, _ = common.ParsePositiveInt(query.Get("page"), 1)
		paging.Limit, _ = common.ParsePositiveInt(query.Get("limit"), 20)

		messages, err := h.contactService.List(ctx, filter, paging)
		if err != nil {
			h.logger.Error("contact list failed", zap.Error(err))
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to list contacts")
			return
		}

		items := make([]contactResponse, 0, len(messages))
		for _, message := range messages {
			items = append(items, buildContactResponse(message))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, contactListResponse{
			Items: items,
			Page:  paging.Page,
			Limit: paging.Limit,
			Count: len(items),
		})
	}
}

func (h *Handler) contactUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		var req contactUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		message, err := h.contactService.MarkStatus(ctx, chi.URLParam(r, "id"), req.Status)
		if err != nil {
			switch {
			case errors.Is(err, publicapp.ErrNotFound):
				common.WriteError(h.logger, w, http.StatusNotFound, "not found")
			case errors.Is(err, publicapp.ErrInvalidInput):
				common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			default:
				h.logger.Error("contact update failed", zap.String("contactId", chi.URLParam(r, "id")), zap.Error(err))
				common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to update contact")
			}
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildContactResponse(*message))
	}
}
