package service

import (
	"context"

	"applicant-records/internal/platform/tracer"
	"applicant-records/internal/records/models"
	"applicant-records/internal/records/store"
	dErrors "applicant-records/pkg/domain-errors"
)

// Reader lists the documents of one collection, optionally for one applicant.
type Reader[T any] struct {
	collection models.Collection
	finder     store.Finder[T]
	deps
}

func NewReader[T any](collection models.Collection, finder store.Finder[T], opts ...Option) *Reader[T] {
	return &Reader[T]{
		collection: collection,
		finder:     finder,
		deps:       newDeps(opts),
	}
}

func (r *Reader[T]) Collection() models.Collection {
	return r.collection
}

// List returns every document when applicantID is empty, and otherwise the
// documents whose applicantId equals it. An empty unfiltered result is an
// empty slice; an empty filtered result is a not-found error.
func (r *Reader[T]) List(ctx context.Context, applicantID string) ([]T, error) {
	filter := store.ByApplicant(applicantID)
	ctx, span := r.tracer.Start(ctx, tracer.SpanRecordsList,
		tracer.String(tracer.AttrCollection, r.collection.String()),
		tracer.Bool(tracer.AttrFiltered, filter.Filtered()),
	)

	docs, err := r.finder.Find(ctx, filter)
	if err != nil {
		span.End(err)
		r.metrics.IncStoreError(r.collection.String())
		return nil, dErrors.Internal(err)
	}
	span.SetAttributes(tracer.Int64(tracer.AttrResultCount, int64(len(docs))))
	span.End(nil)

	if len(docs) == 0 {
		if filter.Filtered() {
			return nil, dErrors.NotFound("No %s found for given applicantId", r.collection.Description())
		}
		return []T{}, nil
	}

	r.metrics.AddRecordsServed(r.collection.String(), len(docs))
	return docs, nil
}
