package models

import (
	"strings"

	dErrors "applicant-records/pkg/domain-errors"
)

// DefaultNoteContent is stored when a note is created without content.
const DefaultNoteContent = "no content"

// CreateNoteRequest is the body of POST /notes[/{applicantId}].
// ApplicantID is only read when the path does not carry one.
type CreateNoteRequest struct {
	ApplicantID string `json:"applicantId"`
	Content     string `json:"content"`

	// PathApplicantID is the {applicantId} path segment, stored as given.
	PathApplicantID string `json:"-"`
}

// Sanitize trims the body applicant id and applies the content default.
func (r *CreateNoteRequest) Sanitize() {
	if r == nil {
		return
	}
	r.ApplicantID = strings.TrimSpace(r.ApplicantID)
	if r.Content == "" {
		r.Content = DefaultNoteContent
	}
}

// Applicant returns the path applicant when present, else the body one.
func (r *CreateNoteRequest) Applicant() string {
	if r.PathApplicantID != "" {
		return r.PathApplicantID
	}
	return r.ApplicantID
}

// Validate requires an applicant id from either the path or the body.
func (r *CreateNoteRequest) Validate() error {
	if r == nil || r.Applicant() == "" {
		return dErrors.BadRequest("applicantId is required")
	}
	return nil
}

// UpdateNoteRequest is the body of PUT /notes/{noteId}. A nil Content means
// the field was absent; an empty string is a legitimate value.
type UpdateNoteRequest struct {
	Content *string `json:"content"`
}

func (r *UpdateNoteRequest) Validate() error {
	if r == nil || r.Content == nil {
		return dErrors.BadRequest("content is required")
	}
	return nil
}

