// Package tracer is the tracing seam for the record services. Services take
// a Tracer; tests pass NewNoop and the server passes NewOTel.
package tracer

import "context"

// Span is one traced operation. End must be called exactly once; a non-nil
// err marks the span failed.
type Span interface {
	End(err error)
	SetAttributes(attrs ...Attribute)
}

// Tracer is safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute      { return Attribute{key, value} }
func Bool(key string, value bool) Attribute   { return Attribute{key, value} }
func Int64(key string, value int64) Attribute { return Attribute{key, value} }

const (
	SpanRecordsList = "records.list"
	SpanNoteCreate  = "notes.create"
	SpanNoteUpdate  = "notes.update"
	SpanNoteDelete  = "notes.delete"
)

const (
	AttrCollection   = "collection"
	AttrApplicantID  = "applicant_id"
	AttrNoteID       = "note_id"
	AttrFiltered     = "filtered"
	AttrResultCount  = "result.count"
	AttrMatchedCount = "result.matched"
)
