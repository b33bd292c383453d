package enrichment

import "context"

// TxRunner wraps a function in a storage transaction. The memory-backed
// setup passes nil and gets a passthrough.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo Repository
	inTx TxRunner
}

func NewService(repo Repository, inTx TxRunner) *Service {
	if inTx == nil {
		inTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return &Service{repo: repo, inTx: inTx}
}

func (s *Service) NormalizeNames(ctx context.Context) (int64, error) {
	return s.repo.NormalizeNames(ctx)
}

// Run executes the full stage: names first, then derived columns, in one
// transaction so a failure leaves the table untouched.
func (s *Service) Run(ctx context.Context) (*RunResult, error) {
	res := &RunResult{}
	err := s.inTx(ctx, func(ctx context.Context) error {
		n, err := s.repo.NormalizeNames(ctx)
		if err != nil {
			return err
		}
		res.NamesNormalized = n

		enriched, err := s.repo.Enrich(ctx)
		if err != nil {
			return err
		}
		res.RowsEnriched = enriched.RowsEnriched
		res.UnbucketedAges = enriched.UnbucketedAges
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
