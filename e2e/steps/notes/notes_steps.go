package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/cucumber/godog"
)

var noteIDPattern = regexp.MustCompile(`^note_[0-9a-f]{8}$`)

// TestContext interface defines the methods needed from the main test context.
type TestContext interface {
	Do(method, path string, body any) error
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	SaveNoteID(id string)
	LastNoteID() string
	SavedNoteIDs() []string
}

// RegisterSteps registers note lifecycle steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &noteSteps{tc: tc}

	ctx.Step(`^I create a note for applicant "([^"]*)" with content "([^"]*)"$`, steps.createNote)
	ctx.Step(`^I create (\d+) notes for applicant "([^"]*)"$`, steps.createNotes)
	ctx.Step(`^I update the saved note with content "([^"]*)"$`, steps.updateSavedNote)
	ctx.Step(`^I delete the saved note$`, steps.deleteSavedNote)

	ctx.Step(`^the created note should have a generated note id$`, steps.createdNoteHasGeneratedID)
	ctx.Step(`^the response should include the saved note$`, steps.responseIncludesSavedNote)
	ctx.Step(`^the response should not include the saved note$`, steps.responseExcludesSavedNote)
	ctx.Step(`^the response message should be "([^"]*)" for the saved note$`, steps.responseMessageForSavedNote)
	ctx.Step(`^all saved note ids should be distinct$`, steps.allNoteIDsDistinct)
}

type noteSteps struct {
	tc TestContext
}

type note struct {
	ApplicantID string `json:"applicantId"`
	NoteID      string `json:"noteId"`
	Content     string `json:"content"`
}

func (s *noteSteps) createNote(_ context.Context, applicantID, content string) error {
	if err := s.tc.Do("POST", "/notes/"+applicantID, map[string]string{"content": content}); err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() != 201 {
		return nil
	}
	var created note
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &created); err != nil {
		return fmt.Errorf("failed to parse created note: %w", err)
	}
	s.tc.SaveNoteID(created.NoteID)
	return nil
}

func (s *noteSteps) createNotes(ctx context.Context, n int, applicantID string) error {
	for i := range n {
		if err := s.createNote(ctx, applicantID, fmt.Sprintf("note %d", i)); err != nil {
			return err
		}
		if status := s.tc.GetLastResponseStatus(); status != 201 {
			return fmt.Errorf("create note %d: status %d", i, status)
		}
	}
	return nil
}

func (s *noteSteps) updateSavedNote(_ context.Context, content string) error {
	return s.tc.Do("PUT", "/notes/"+s.tc.LastNoteID(), map[string]string{"content": content})
}

func (s *noteSteps) deleteSavedNote(_ context.Context) error {
	return s.tc.Do("DELETE", "/notes/"+s.tc.LastNoteID(), nil)
}

func (s *noteSteps) createdNoteHasGeneratedID(_ context.Context) error {
	id := s.tc.LastNoteID()
	if !noteIDPattern.MatchString(id) {
		return fmt.Errorf("note id %q does not match %s", id, noteIDPattern)
	}
	return nil
}

func (s *noteSteps) listedNoteIDs() (map[string]bool, error) {
	var list []note
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &list); err != nil {
		return nil, fmt.Errorf("response is not a list of notes: %w", err)
	}
	ids := make(map[string]bool, len(list))
	for _, n := range list {
		ids[n.NoteID] = true
	}
	return ids, nil
}

func (s *noteSteps) responseIncludesSavedNote(_ context.Context) error {
	ids, err := s.listedNoteIDs()
	if err != nil {
		return err
	}
	if !ids[s.tc.LastNoteID()] {
		return fmt.Errorf("note %s not listed", s.tc.LastNoteID())
	}
	return nil
}

// responseExcludesSavedNote accepts a 404 as well, since an applicant whose
// only note was deleted has no notes at all.
func (s *noteSteps) responseExcludesSavedNote(_ context.Context) error {
	if s.tc.GetLastResponseStatus() == 404 {
		return nil
	}
	ids, err := s.listedNoteIDs()
	if err != nil {
		return err
	}
	if ids[s.tc.LastNoteID()] {
		return fmt.Errorf("note %s still listed", s.tc.LastNoteID())
	}
	return nil
}

func (s *noteSteps) responseMessageForSavedNote(_ context.Context, template string) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &body); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	want := fmt.Sprintf(template, s.tc.LastNoteID())
	got := body.Message
	if got == "" {
		got = body.Error
	}
	if got != want {
		return fmt.Errorf("expected %q but got %q", want, got)
	}
	return nil
}

func (s *noteSteps) allNoteIDsDistinct(_ context.Context) error {
	seen := make(map[string]bool)
	for _, id := range s.tc.SavedNoteIDs() {
		if seen[id] {
			return fmt.Errorf("duplicate note id %s", id)
		}
		seen[id] = true
	}
	return nil
}
