package public

import (
	"context"
	"net/http"
	"time"

	"github.com/assessly-hq/assessly-services/api/internal/interfaces/http/common"
	publicapp "github.com/assessly-hq/assessly-services/api/internal/public/application"
)

func (h *Handler) registerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		var req registerRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}

		user, token, err := h.auth.Register(ctx, publicapp.RegisterCommand{
			OrganizationName: req.OrganizationName,
			Name:             req.Name,
			Email:            req.Email,
			Password:         req.Password,
		})
		if err != nil {
			h.writeServiceError(w, err, "auth register")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, authResponse{
			Token: token,
			User:  buildUserResponse(user),
		})
	}
}

func (h *Handler) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		var req loginRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}

		user, token, err := h.auth.Login(ctx, req.Email, req.Password)
		if err != nil {
			h.writeServiceError(w, err, "auth login")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, authResponse{
			Token: token,
			User:  buildUserResponse(user),
		})
	}
}

func (h *Handler) authVerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.requireUser(w, r)
		if !ok {
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"status": "ok",
			"user":   user,
		})
	}
}
