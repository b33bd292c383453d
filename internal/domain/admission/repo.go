package admission

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no admission matches the requested id.
var ErrNotFound = errors.New("admission not found")

// Repository is the storage boundary for admission rows. Reporting, quality
// and enrichment own their read/write surfaces; this one covers loading and
// browsing the base table.
type Repository interface {
	Insert(ctx context.Context, a *Admission) error
	BulkInsert(ctx context.Context, rows []*Admission) (int64, error)
	GetByID(ctx context.Context, id int64) (*Admission, error)
	List(ctx context.Context, limit, offset int) ([]*Admission, int, error)
	Count(ctx context.Context) (int64, error)
}
