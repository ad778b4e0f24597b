package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"applicant-records/internal/records/models"
	dErrors "applicant-records/pkg/domain-errors"
	"applicant-records/pkg/platform/httputil"
	"applicant-records/pkg/platform/middleware/request"
)

// Lister is the read side of one collection.
type Lister[T any] interface {
	Collection() models.Collection
	List(ctx context.Context, applicantID string) ([]T, error)
}

// ListHandler serves GET <path> and GET <path>/{applicantId}.
type ListHandler[T any] struct {
	path   string
	lister Lister[T]
	logger *slog.Logger
}

func NewList[T any](path string, lister Lister[T], logger *slog.Logger) *ListHandler[T] {
	return &ListHandler[T]{
		path:   path,
		lister: lister,
		logger: logger,
	}
}

func (h *ListHandler[T]) Register(r chi.Router) {
	r.Get(h.path, h.handleList)
	r.Get(h.path+"/{applicantId}", h.handleList)
}

func (h *ListHandler[T]) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	applicantID := chi.URLParam(r, "applicantId")

	docs, err := h.lister.List(ctx, applicantID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to list records",
				"request_id", request.GetRequestID(r),
				"collection", h.lister.Collection().String(),
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, docs)
}
