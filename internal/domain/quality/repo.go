package quality

import "context"

type Repository interface {
	Counts(ctx context.Context) (*Report, error)
}
