package testutil

import (
	"sync"
	"sync/atomic"

	dErrors "applicant-records/pkg/domain-errors"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes   int32
	NotFounds   int32
	BadRequests int32
	Errors      int32
}

func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.NotFounds + r.BadRequests + r.Errors
}

// RunConcurrent runs fn in n goroutines and buckets each returned error by
// its domain error code.
func RunConcurrent(n int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, notFounds, badRequests, errs atomic.Int32

	for i := range n {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case dErrors.HasCode(err, dErrors.CodeNotFound):
				notFounds.Add(1)
			case dErrors.HasCode(err, dErrors.CodeBadRequest):
				badRequests.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}
	wg.Wait()

	return &ConcurrentResult{
		Successes:   successes.Load(),
		NotFounds:   notFounds.Load(),
		BadRequests: badRequests.Load(),
		Errors:      errs.Load(),
	}
}
