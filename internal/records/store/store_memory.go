package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"applicant-records/internal/records/models"
)

// MemoryCollection keeps one collection in insertion order.
type MemoryCollection[T models.Document] struct {
	mu   sync.RWMutex
	docs []T
}

// Seed appends documents as written by an out-of-band process.
func (c *MemoryCollection[T]) Seed(docs ...T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = append(c.docs, docs...)
}

func (c *MemoryCollection[T]) Find(_ context.Context, filter Filter) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]T, 0, len(c.docs))
	for _, doc := range c.docs {
		if filter.Filtered() && doc.ApplicantKey() != filter.ApplicantID {
			continue
		}
		result = append(result, doc)
	}
	return result, nil
}

// MemoryNoteStore is the mutable notes collection.
type MemoryNoteStore struct {
	MemoryCollection[models.Note]
}

func (s *MemoryNoteStore) Insert(_ context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	s.docs = append(s.docs, *note)
	return nil
}

func (s *MemoryNoteStore) UpdateContent(_ context.Context, noteID, content string) (UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(noteID)
	if i < 0 {
		return UpdateResult{}, nil
	}
	if s.docs[i].Content == content {
		return UpdateResult{Matched: 1}, nil
	}
	s.docs[i].Content = content
	return UpdateResult{Matched: 1, Modified: 1}, nil
}

func (s *MemoryNoteStore) Delete(_ context.Context, noteID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(noteID)
	if i < 0 {
		return 0, nil
	}
	s.docs = append(s.docs[:i], s.docs[i+1:]...)
	return 1, nil
}

// indexOf must be called with the lock held.
func (s *MemoryNoteStore) indexOf(noteID string) int {
	for i := range s.docs {
		if s.docs[i].NoteID == noteID {
			return i
		}
	}
	return -1
}

// InMemory is a process-local backend for development and tests.
type InMemory struct {
	PersonalInfo   *MemoryCollection[models.PersonalInfo]
	WorkExperience *MemoryCollection[models.WorkExperience]
	Education      *MemoryCollection[models.Education]
	Skills         *MemoryCollection[models.Skill]
	Notes          *MemoryNoteStore
}

func NewInMemory() *InMemory {
	return &InMemory{
		PersonalInfo:   &MemoryCollection[models.PersonalInfo]{},
		WorkExperience: &MemoryCollection[models.WorkExperience]{},
		Education:      &MemoryCollection[models.Education]{},
		Skills:         &MemoryCollection[models.Skill]{},
		Notes:          &MemoryNoteStore{},
	}
}

func (m *InMemory) Records() Records {
	return Records{
		PersonalInfo:   m.PersonalInfo,
		WorkExperience: m.WorkExperience,
		Education:      m.Education,
		Skills:         m.Skills,
		Notes:          m.Notes,
		Health:         func(context.Context) error { return nil },
	}
}

var (
	_ Finder[models.Skill] = (*MemoryCollection[models.Skill])(nil)
	_ NoteStore            = (*MemoryNoteStore)(nil)
)
