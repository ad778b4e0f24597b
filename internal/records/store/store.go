package store

import (
	"context"

	"applicant-records/internal/records/models"
)

// Error Contract:
// Finder and NoteStore methods return wrapped infrastructure errors only.
// A lookup that matches nothing is not an error: Find returns an empty
// slice and mutations report zero counts.

// Filter selects documents. An empty ApplicantID matches every document.
type Filter struct {
	ApplicantID string
}

// ByApplicant returns a filter on the applicantId field.
func ByApplicant(applicantID string) Filter {
	return Filter{ApplicantID: applicantID}
}

// Filtered reports whether the filter restricts by applicant.
func (f Filter) Filtered() bool {
	return f.ApplicantID != ""
}

// Finder reads documents of one collection in the store's natural order.
type Finder[T any] interface {
	Find(ctx context.Context, filter Filter) ([]T, error)
}

// UpdateResult reports how many notes matched and how many actually changed.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// NoteStore is the notes collection with its mutations.
// Update and Delete act on the first note whose noteId matches.
type NoteStore interface {
	Finder[models.Note]
	Insert(ctx context.Context, note *models.Note) error
	UpdateContent(ctx context.Context, noteID, content string) (UpdateResult, error)
	Delete(ctx context.Context, noteID string) (int64, error)
}

// Records bundles the five collections of one backend.
type Records struct {
	PersonalInfo   Finder[models.PersonalInfo]
	WorkExperience Finder[models.WorkExperience]
	Education      Finder[models.Education]
	Skills         Finder[models.Skill]
	Notes          NoteStore

	// Health reports backend reachability for the readiness probe.
	Health func(ctx context.Context) error
}
