package service

//go:generate mockgen -source=../store/store.go -destination=mocks/mocks.go -package=mocks Finder,NoteStore

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"applicant-records/internal/platform/metrics"
	"applicant-records/internal/records/models"
	"applicant-records/internal/records/service/mocks"
	"applicant-records/internal/records/store"
	dErrors "applicant-records/pkg/domain-errors"
	"applicant-records/pkg/testutil"
)

var noteIDPattern = regexp.MustCompile(`^note_[0-9a-f]{8}$`)

type ReaderSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	finder  *mocks.MockFinder[models.Skill]
	metrics *metrics.Metrics
	reader  *Reader[models.Skill]
}

func TestReaderSuite(t *testing.T) {
	suite.Run(t, new(ReaderSuite))
}

func (s *ReaderSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.finder = mocks.NewMockFinder[models.Skill](s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.reader = NewReader[models.Skill](models.CollectionSkills, s.finder, WithMetrics(s.metrics))
}

func (s *ReaderSuite) TestFilterConstruction() {
	s.Run("no applicant matches everything", func() {
		s.finder.EXPECT().Find(gomock.Any(), store.Filter{}).Return([]models.Skill{{SkillID: "s1"}}, nil)
		docs, err := s.reader.List(context.Background(), "")
		s.Require().NoError(err)
		s.Len(docs, 1)
	})

	s.Run("applicant restricts the filter", func() {
		s.finder.EXPECT().Find(gomock.Any(), store.Filter{ApplicantID: "a1"}).Return([]models.Skill{{ApplicantID: "a1"}}, nil)
		docs, err := s.reader.List(context.Background(), "a1")
		s.Require().NoError(err)
		s.Equal("a1", docs[0].ApplicantKey())
	})
}

func (s *ReaderSuite) TestEmptyResults() {
	s.Run("unfiltered empty is an empty slice, not nil", func() {
		s.finder.EXPECT().Find(gomock.Any(), store.Filter{}).Return(nil, nil)
		docs, err := s.reader.List(context.Background(), "")
		s.Require().NoError(err)
		s.NotNil(docs)
		s.Empty(docs)
	})

	s.Run("filtered empty is not found", func() {
		s.finder.EXPECT().Find(gomock.Any(), store.Filter{ApplicantID: "ghost"}).Return([]models.Skill{}, nil)
		_, err := s.reader.List(context.Background(), "ghost")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("No skills found for given applicantId", err.Error())
	})
}

func (s *ReaderSuite) TestStoreFailure() {
	s.finder.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, errors.New("find skills: connection refused"))

	_, err := s.reader.List(context.Background(), "a1")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.Equal("find skills: connection refused", err.Error())
	s.Equal(1.0, promtest.ToFloat64(s.metrics.StoreErrors.WithLabelValues("skills")))
}

type NoteServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *mocks.MockNoteStore
	metrics *metrics.Metrics
	service *NoteService
}

func TestNoteServiceSuite(t *testing.T) {
	suite.Run(t, new(NoteServiceSuite))
}

func (s *NoteServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockNoteStore(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = NewNoteService(s.store,
		WithMetrics(s.metrics),
		WithNoteIDGenerator(func() string { return "note_0123abcd" }),
	)
}

func (s *NoteServiceSuite) outcome(label string) float64 {
	return promtest.ToFloat64(s.metrics.NoteMutations.WithLabelValues(label))
}

func (s *NoteServiceSuite) TestCreate() {
	s.Run("stores the note with a generated id", func() {
		s.store.EXPECT().Insert(gomock.Any(), &models.Note{
			ApplicantID: "a1", NoteID: "note_0123abcd", Content: "hello",
		}).Return(nil)

		note, err := s.service.Create(context.Background(), "a1", "hello")
		s.Require().NoError(err)
		s.Equal("note_0123abcd", note.NoteID)
		s.Equal("a1", note.ApplicantID)
		s.Equal("hello", note.Content)
	})

	s.Run("empty content gets the default", func() {
		s.store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		note, err := s.service.Create(context.Background(), "a1", "")
		s.Require().NoError(err)
		s.Equal(models.DefaultNoteContent, note.Content)
	})

	s.Run("missing applicant never reaches the store", func() {
		_, err := s.service.Create(context.Background(), "", "hello")
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("store failure surfaces the error text", func() {
		s.store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert note: timeout"))
		_, err := s.service.Create(context.Background(), "a1", "x")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
		s.Equal("insert note: timeout", err.Error())
	})

	s.Equal(2.0, s.outcome(metrics.OutcomeCreated))
}

func (s *NoteServiceSuite) TestUpdate() {
	cases := []struct {
		name    string
		result  store.UpdateResult
		message string
		code    dErrors.Code
		outcome string
	}{
		{"no match", store.UpdateResult{}, "Note note_1 not found", dErrors.CodeNotFound, metrics.OutcomeNotFound},
		{"matched but unchanged", store.UpdateResult{Matched: 1}, "Note note_1 was found but not modified", "", metrics.OutcomeUnchanged},
		{"matched and changed", store.UpdateResult{Matched: 1, Modified: 1}, "Note note_1 was successfully updated", "", metrics.OutcomeUpdated},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.store.EXPECT().UpdateContent(gomock.Any(), "note_1", "X").Return(tc.result, nil)
			msg, err := s.service.Update(context.Background(), "note_1", "X")
			if tc.code != "" {
				s.Require().Error(err)
				s.True(dErrors.HasCode(err, tc.code))
				s.Equal(tc.message, err.Error())
			} else {
				s.Require().NoError(err)
				s.Equal(tc.message, msg)
			}
			s.Equal(1.0, s.outcome(tc.outcome))
		})
	}

	s.Run("store failure", func() {
		s.store.EXPECT().UpdateContent(gomock.Any(), "note_1", "X").Return(store.UpdateResult{}, errors.New("boom"))
		_, err := s.service.Update(context.Background(), "note_1", "X")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
		s.Equal("boom", err.Error())
	})
}

func (s *NoteServiceSuite) TestDelete() {
	s.Run("deleted", func() {
		s.store.EXPECT().Delete(gomock.Any(), "note_1").Return(int64(1), nil)
		msg, err := s.service.Delete(context.Background(), "note_1")
		s.Require().NoError(err)
		s.Equal("Note note_1 was successfully deleted", msg)
	})

	s.Run("not found", func() {
		s.store.EXPECT().Delete(gomock.Any(), "note_2").Return(int64(0), nil)
		_, err := s.service.Delete(context.Background(), "note_2")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("Note note_2 not found", err.Error())
	})

	s.Run("store failure", func() {
		s.store.EXPECT().Delete(gomock.Any(), "note_3").Return(int64(0), errors.New("delete note: closed"))
		_, err := s.service.Delete(context.Background(), "note_3")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func TestNewNoteIDFormat(t *testing.T) {
	for range 100 {
		assert.Regexp(t, noteIDPattern, NewNoteID())
	}
}

func TestNewNoteIDDistinct(t *testing.T) {
	const sample = 10000
	seen := make(map[string]struct{}, sample)
	for range sample {
		seen[NewNoteID()] = struct{}{}
	}
	// 32 bits of randomness: a collision in 10k draws is possible but rare.
	assert.GreaterOrEqual(t, len(seen), sample-1)
}

func TestNotesLifecycleAgainstMemoryStore(t *testing.T) {
	mem := store.NewInMemory()
	notes := NewNoteService(mem.Notes)
	reader := NewReader[models.Note](models.CollectionNotes, mem.Notes)
	ctx := context.Background()

	created, err := notes.Create(ctx, "a1", "hello")
	require.NoError(t, err)
	assert.Regexp(t, noteIDPattern, created.NoteID)
	assert.False(t, created.ID.IsZero())

	listed, err := reader.List(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, *created, listed[0])

	msg, err := notes.Update(ctx, created.NoteID, "hello")
	require.NoError(t, err)
	assert.Contains(t, msg, "found but not modified")

	msg, err = notes.Update(ctx, created.NoteID, "bye")
	require.NoError(t, err)
	assert.Contains(t, msg, "successfully updated")

	_, err = notes.Delete(ctx, created.NoteID)
	require.NoError(t, err)

	_, err = reader.List(ctx, "a1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = notes.Delete(ctx, created.NoteID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestConcurrentDeleteRemovesOnce(t *testing.T) {
	mem := store.NewInMemory()
	notes := NewNoteService(mem.Notes)
	ctx := context.Background()

	created, err := notes.Create(ctx, "a1", "racy")
	require.NoError(t, err)

	result := testutil.RunConcurrent(20, func(int) error {
		_, err := notes.Delete(ctx, created.NoteID)
		return err
	})

	assert.Equal(t, int32(1), result.Successes)
	assert.Equal(t, int32(19), result.NotFounds)
	assert.Zero(t, result.Errors)
}

func TestConcurrentUpdatesModifyOnce(t *testing.T) {
	mem := store.NewInMemory()
	notes := NewNoteService(mem.Notes)
	ctx := context.Background()

	created, err := notes.Create(ctx, "a1", "before")
	require.NoError(t, err)

	var updated atomic.Int32
	result := testutil.RunConcurrent(20, func(int) error {
		msg, err := notes.Update(ctx, created.NoteID, "after")
		if err == nil && strings.HasSuffix(msg, "successfully updated") {
			updated.Add(1)
		}
		return err
	})

	assert.Equal(t, int32(20), result.Successes)
	assert.Equal(t, int32(1), updated.Load())
}
