package service

import (
	"log/slog"

	"github.com/google/uuid"

	"applicant-records/internal/platform/metrics"
	"applicant-records/internal/platform/tracer"
)

// NoteIDGenerator produces identifiers for new notes.
type NoteIDGenerator func() string

// NewNoteID returns "note_" followed by the first 8 hex characters of a
// random UUID. Collisions are possible and are not checked against the store.
func NewNoteID() string {
	return "note_" + uuid.NewString()[:8]
}

// deps are shared by Reader and NoteService.
type deps struct {
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    tracer.Tracer
	newNoteID NoteIDGenerator
}

type Option func(*deps)

func WithLogger(logger *slog.Logger) Option {
	return func(d *deps) {
		d.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *deps) {
		d.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(d *deps) {
		d.tracer = t
	}
}

// WithNoteIDGenerator overrides NewNoteID. Ignored when gen is nil.
func WithNoteIDGenerator(gen NoteIDGenerator) Option {
	return func(d *deps) {
		if gen != nil {
			d.newNoteID = gen
		}
	}
}

func newDeps(opts []Option) deps {
	d := deps{
		logger:    slog.New(slog.DiscardHandler),
		tracer:    tracer.NewNoop(),
		newNoteID: NewNoteID,
	}
	for _, opt := range opts {
		opt(&d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	if d.tracer == nil {
		d.tracer = tracer.NewNoop()
	}
	return d
}
