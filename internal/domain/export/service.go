package export

import (
	"context"
	"io"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Rows returns the projection.
func (s *Service) Rows(ctx context.Context) ([]Row, error) {
	return s.repo.Rows(ctx)
}

// WriteCSV streams the projection as CSV.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.repo.Rows(ctx)
	if err != nil {
		return err
	}
	return WriteCSV(w, rows)
}

// WriteParquet streams the projection as Parquet.
func (s *Service) WriteParquet(ctx context.Context, w io.Writer) error {
	rows, err := s.repo.Rows(ctx)
	if err != nil {
		return err
	}
	return WriteParquet(w, rows)
}
