package admission

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

const seedBatchSize = 1000

// SeedResult summarizes one seed run. Skipped rows carry the CSV row
// number and the reason so defective input is visible, not silently lost.
type SeedResult struct {
	BatchID    string     `json:"batch_id"`
	RowsLoaded int64      `json:"rows_loaded"`
	Skipped    []RowError `json:"skipped,omitempty"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*Admission, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id must be positive")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Admission, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// SeedFromCSV streams admissions from r into the store in batches.
// Unusable rows are recorded and skipped; storage errors abort the run.
func (s *Service) SeedFromCSV(ctx context.Context, r io.Reader) (*SeedResult, error) {
	loader, err := NewCSVLoader(r)
	if err != nil {
		return nil, err
	}
	return s.seed(ctx, loader)
}

// SeedFile seeds from a CSV file on disk.
func (s *Service) SeedFile(ctx context.Context, path string) (*SeedResult, error) {
	loader, err := OpenCSV(path)
	if err != nil {
		return nil, err
	}
	defer loader.Close()
	return s.seed(ctx, loader)
}

func (s *Service) seed(ctx context.Context, loader *CSVLoader) (*SeedResult, error) {
	res := &SeedResult{BatchID: uuid.New().String()}
	batch := make([]*Admission, 0, seedBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := s.repo.BulkInsert(ctx, batch)
		if err != nil {
			return fmt.Errorf("bulk insert: %w", err)
		}
		res.RowsLoaded += n
		batch = batch[:0]
		return nil
	}

	for {
		adm, err := loader.Next()
		if err == io.EOF {
			break
		}
		var rowErr *RowError
		if errors.As(err, &rowErr) {
			res.Skipped = append(res.Skipped, *rowErr)
			continue
		}
		if err != nil {
			return nil, err
		}
		batch = append(batch, adm)
		if len(batch) == seedBatchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return res, nil
}
