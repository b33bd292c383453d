package export

import "context"

type Repository interface {
	// Rows returns the whole projection ordered by date_of_admission then id.
	Rows(ctx context.Context) ([]Row, error)
}
