package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "applicant-records/pkg/domain-errors"
)

func TestCreateNoteRequest(t *testing.T) {
	t.Run("empty content gets the default", func(t *testing.T) {
		req := &CreateNoteRequest{ApplicantID: " a1 "}
		req.Sanitize()
		assert.Equal(t, "a1", req.ApplicantID)
		assert.Equal(t, DefaultNoteContent, req.Content)
		assert.NoError(t, req.Validate())
	})

	t.Run("given content is kept verbatim", func(t *testing.T) {
		req := &CreateNoteRequest{ApplicantID: "a1", Content: "  hello "}
		req.Sanitize()
		assert.Equal(t, "  hello ", req.Content)
	})

	t.Run("path applicant wins and is kept as given", func(t *testing.T) {
		req := &CreateNoteRequest{ApplicantID: "body", PathApplicantID: " a1 "}
		req.Sanitize()
		assert.Equal(t, " a1 ", req.Applicant())
		assert.NoError(t, req.Validate())
	})

	t.Run("body applicant is the fallback", func(t *testing.T) {
		req := &CreateNoteRequest{ApplicantID: " a1 "}
		req.Sanitize()
		assert.Equal(t, "a1", req.Applicant())
	})

	t.Run("applicant id is required", func(t *testing.T) {
		req := &CreateNoteRequest{ApplicantID: "   "}
		req.Sanitize()
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
		assert.Equal(t, "applicantId is required", err.Error())
	})
}

func TestUpdateNoteRequest(t *testing.T) {
	empty := ""
	assert.NoError(t, (&UpdateNoteRequest{Content: &empty}).Validate())

	err := (&UpdateNoteRequest{}).Validate()
	require.Error(t, err)
	assert.Equal(t, "content is required", err.Error())
}

func TestCollectionDescription(t *testing.T) {
	cases := map[Collection]string{
		CollectionPersonalInfo:   "personal info",
		CollectionWorkExperience: "work experience",
		CollectionEducation:      "education",
		CollectionSkills:         "skills",
		CollectionNotes:          "notes",
	}
	for c, want := range cases {
		assert.Equal(t, want, c.Description(), c.String())
	}
}
