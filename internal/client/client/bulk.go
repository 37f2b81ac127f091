package client

import (
	"context"

	"github.com/thoas/go-funk"
	"golang.org/x/sync/errgroup"
)

type BulkStatus string

const (
	BulkSuccess BulkStatus = "success"
	BulkPartial BulkStatus = "partial"
	BulkFailed  BulkStatus = "failed"
)

type BulkFailure struct {
	ID     string
	Kind   Kind
	Status int
	Err    error
}

// BulkResult aggregates the outcome of a bulk delete. Status is "success"
// when nothing failed and "partial" when some but not all ids failed.
// "failed" extends that two-value status for a non-empty batch in which
// every id failed, so callers can tell it apart from a partial outcome.
type BulkResult struct {
	SuccessCount int
	Failures     []BulkFailure
	Status       BulkStatus
}

// FailedIDs lists the ids whose delete failed, in request order.
func (r *BulkResult) FailedIDs() []string {
	return funk.Map(r.Failures, func(f BulkFailure) string { return f.ID }).([]string)
}

// bulkDelete runs del for every id concurrently and waits for all of them;
// one failure never cancels the others.
func bulkDelete(ctx context.Context, ids []string, credential string, del func(ctx context.Context, id, credential string) error) (*BulkResult, error) {
	if credential == "" {
		return nil, errMissingCredential()
	}

	errs := make([]error, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			errs[i] = del(ctx, id, credential)
			return nil
		})
	}
	_ = g.Wait()

	res := &BulkResult{Failures: make([]BulkFailure, 0)}
	for i, err := range errs {
		if err == nil {
			res.SuccessCount++
			continue
		}
		res.Failures = append(res.Failures, BulkFailure{
			ID:     ids[i],
			Kind:   KindOf(err),
			Status: StatusOf(err),
			Err:    err,
		})
	}

	switch m := len(res.Failures); {
	case m == 0:
		res.Status = BulkSuccess
	case m == len(ids):
		res.Status = BulkFailed
	default:
		res.Status = BulkPartial
	}
	return res, nil
}
