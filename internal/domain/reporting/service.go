package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// QueryResult is the outcome of one catalog query. Exactly one of Rows and
// Error is set.
type QueryResult struct {
	ID         string      `json:"id"`
	Theme      string      `json:"theme"`
	DurationMS int64       `json:"duration_ms"`
	Rows       interface{} `json:"rows,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// BatchResult is the outcome of running the whole catalog.
type BatchResult struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Queries   int           `json:"queries"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Results   []QueryResult `json:"results"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Catalog lists the available query definitions.
func (s *Service) Catalog() []Definition {
	return Definitions()
}

// Run executes a single catalog query by id.
func (s *Service) Run(ctx context.Context, id string) (*QueryResult, error) {
	def, ok := Find(id)
	if !ok {
		return nil, ErrUnknownQuery
	}
	res := s.execute(ctx, def)
	return &res, nil
}

// RunAll executes every catalog query in canonical order. A failing query is
// recorded in its result and never stops the rest of the batch.
func (s *Service) RunAll(ctx context.Context) *BatchResult {
	batch := &BatchResult{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
		Queries:   len(catalog),
	}
	for _, def := range catalog {
		res := s.execute(ctx, def)
		if res.Error != "" {
			batch.Failed++
		} else {
			batch.Succeeded++
		}
		batch.Results = append(batch.Results, res)
	}
	return batch
}

// MonthlyKPIs reads the persisted monthly KPI view.
func (s *Service) MonthlyKPIs(ctx context.Context) ([]MonthlyKPI, error) {
	return s.repo.MonthlyKPIs(ctx)
}

// ConditionSummaries reads the persisted condition summary view.
func (s *Service) ConditionSummaries(ctx context.Context) ([]ConditionSummary, error) {
	return s.repo.ConditionSummaries(ctx)
}

func (s *Service) execute(ctx context.Context, def Definition) QueryResult {
	res := QueryResult{ID: def.ID, Theme: def.Theme}
	start := time.Now()
	rows, err := def.Run(ctx, s.repo)
	res.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Rows = rows
	return res
}
