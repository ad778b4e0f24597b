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

// NoteService defines the note mutations.
type NoteService interface {
	Create(ctx context.Context, applicantID, content string) (*models.Note, error)
	Update(ctx context.Context, noteID, content string) (string, error)
	Delete(ctx context.Context, noteID string) (string, error)
}

// NoteHandler serves the note mutation routes.
type NoteHandler struct {
	notes  NoteService
	logger *slog.Logger
}

func NewNotes(notes NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		notes:  notes,
		logger: logger,
	}
}

// Register mounts the mutation routes. GET /notes is served by a ListHandler.
func (h *NoteHandler) Register(r chi.Router) {
	r.Post("/notes", h.handleCreate)
	r.Post("/notes/{applicantId}", h.handleCreate)
	r.Put("/notes/{noteId}", h.handleUpdate)
	r.Delete("/notes/{noteId}", h.handleDelete)
}

// handleCreate takes the applicant from the path, falling back to the body
// only when the path carries none.
func (h *NoteHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(r)

	req, ok := httputil.DecodeAndPrepare(w, r, h.logger, ctx, requestID, func(body *models.CreateNoteRequest) {
		body.PathApplicantID = chi.URLParam(r, "applicantId")
	})
	if !ok {
		return
	}

	note, err := h.notes.Create(ctx, req.Applicant(), req.Content)
	if err != nil {
		h.logFailure(ctx, "failed to create note", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(r)
	noteID := chi.URLParam(r, "noteId")

	req, ok := httputil.DecodeAndPrepare[models.UpdateNoteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	msg, err := h.notes.Update(ctx, noteID, *req.Content)
	if err != nil {
		h.logFailure(ctx, "failed to update note", requestID, err, "note_id", noteID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, msg)
}

func (h *NoteHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(r)
	noteID := chi.URLParam(r, "noteId")

	msg, err := h.notes.Delete(ctx, noteID)
	if err != nil {
		h.logFailure(ctx, "failed to delete note", requestID, err, "note_id", noteID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, msg)
}

// logFailure logs store failures at error level. Not-found is an expected
// outcome and is not logged.
func (h *NoteHandler) logFailure(ctx context.Context, msg, requestID string, err error, attrs ...any) {
	if !dErrors.HasCode(err, dErrors.CodeInternal) {
		return
	}
	h.logger.ErrorContext(ctx, msg, append([]any{"request_id", requestID, "error", err}, attrs...)...)
}
