package pipeline

import (
	"context"
	"errors"

	"github.com/zalahu/EnergyZ/internal/entity"
)

// ErrReviewAborted signals that the operator declined the extraction.
// Persistence is never invoked for an aborted review.
var ErrReviewAborted = errors.New("review aborted by operator")

// Reviewer is the human-in-the-loop boundary. Implementations may add,
// remove, or mutate any field and return control once the operator has
// approved, or return ErrReviewAborted.
type Reviewer interface {
	Review(ctx context.Context, fields entity.FieldMap) (entity.FieldMap, error)
}

// AutoApprove passes every extraction through unchanged. Used for
// non-interactive runs.
type AutoApprove struct{}

func (AutoApprove) Review(_ context.Context, fields entity.FieldMap) (entity.FieldMap, error) {
	return fields, nil
}
