package service

import (
	"context"
	"fmt"

	"applicant-records/internal/platform/metrics"
	"applicant-records/internal/platform/tracer"
	"applicant-records/internal/records/models"
	"applicant-records/internal/records/store"
	dErrors "applicant-records/pkg/domain-errors"
)

// NoteService owns note mutations. Concurrent mutations of
// the same note are not coordinated; the last write wins.
type NoteService struct {
	store store.NoteStore
	deps
}

func NewNoteService(notes store.NoteStore, opts ...Option) *NoteService {
	return &NoteService{
		store: notes,
		deps:  newDeps(opts),
	}
}

// Create stores a new note under a freshly generated noteId. Empty content
// is replaced by models.DefaultNoteContent.
func (s *NoteService) Create(ctx context.Context, applicantID, content string) (*models.Note, error) {
	if applicantID == "" {
		return nil, dErrors.BadRequest("applicantId is required")
	}
	if content == "" {
		content = models.DefaultNoteContent
	}

	note := &models.Note{
		ApplicantID: applicantID,
		NoteID:      s.newNoteID(),
		Content:     content,
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanNoteCreate,
		tracer.String(tracer.AttrApplicantID, applicantID),
		tracer.String(tracer.AttrNoteID, note.NoteID),
	)
	err := s.store.Insert(ctx, note)
	span.End(err)
	if err != nil {
		return nil, s.storeError(err)
	}

	s.metrics.IncNoteMutation(metrics.OutcomeCreated)
	s.logger.InfoContext(ctx, "note created",
		"note_id", note.NoteID,
		"applicant_id", applicantID,
	)
	return note, nil
}

// Update sets the content of the first note matching noteID and returns the
// outcome message. Setting the content it already has is not an error.
func (s *NoteService) Update(ctx context.Context, noteID, content string) (string, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanNoteUpdate, tracer.String(tracer.AttrNoteID, noteID))
	res, err := s.store.UpdateContent(ctx, noteID, content)
	if err == nil {
		span.SetAttributes(tracer.Int64(tracer.AttrMatchedCount, res.Matched))
	}
	span.End(err)
	if err != nil {
		return "", s.storeError(err)
	}

	switch {
	case res.Matched == 0:
		s.metrics.IncNoteMutation(metrics.OutcomeNotFound)
		return "", noteNotFound(noteID)
	case res.Modified == 0:
		s.metrics.IncNoteMutation(metrics.OutcomeUnchanged)
		return fmt.Sprintf("Note %s was found but not modified", noteID), nil
	default:
		s.metrics.IncNoteMutation(metrics.OutcomeUpdated)
		s.logger.InfoContext(ctx, "note updated", "note_id", noteID)
		return fmt.Sprintf("Note %s was successfully updated", noteID), nil
	}
}

// Delete permanently removes the first note matching noteID.
func (s *NoteService) Delete(ctx context.Context, noteID string) (string, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanNoteDelete, tracer.String(tracer.AttrNoteID, noteID))
	deleted, err := s.store.Delete(ctx, noteID)
	span.End(err)
	if err != nil {
		return "", s.storeError(err)
	}
	if deleted == 0 {
		s.metrics.IncNoteMutation(metrics.OutcomeNotFound)
		return "", noteNotFound(noteID)
	}

	s.metrics.IncNoteMutation(metrics.OutcomeDeleted)
	s.logger.InfoContext(ctx, "note deleted", "note_id", noteID)
	return fmt.Sprintf("Note %s was successfully deleted", noteID), nil
}

func (s *NoteService) storeError(err error) error {
	s.metrics.IncStoreError(models.CollectionNotes.String())
	return dErrors.Internal(err)
}

func noteNotFound(noteID string) error {
	return dErrors.NotFound("Note %s not found", noteID)
}
