package public

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/assessly-hq/assessly-services/api/internal/interfaces/http/common"
	publicapp "github.com/assessly-hq/assessly-services/api/internal/public/application"
)

// responseSubmitHandler accepts a candidate submission. Scoring happens
// inline, so the timeout leaves room for the remote grader.
func (h *Handler) responseSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		var req submitRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}

		answers := make([]publicapp.AnswerCommand, 0, len(req.Answers))
		for _, answer := range req.Answers {
			answers = append(answers, publicapp.AnswerCommand{
				QuestionID:     answer.QuestionID,
				Text:           answer.Text,
				SelectedOption: answer.SelectedOption,
			})
		}

		response, err := h.responses.Submit(ctx, publicapp.SubmitResponseCommand{
			Token:   chi.URLParam(r, "token"),
			Answers: answers,
		})
		if err != nil {
			h.writeServiceError(w, err, "response submit")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildSubmitResponse(response))
	}
}
