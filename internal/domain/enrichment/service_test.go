package enrichment

import (
	"context"
	"fmt"
	"testing"
)

type fakeRepo struct {
	calls         []string
	failNormalize bool
	failEnrich    bool
}

func (f *fakeRepo) NormalizeNames(ctx context.Context) (int64, error) {
	f.calls = append(f.calls, "normalize")
	if f.failNormalize {
		return 0, fmt.Errorf("normalize failed")
	}
	return 3, nil
}

func (f *fakeRepo) Enrich(ctx context.Context) (*Result, error) {
	f.calls = append(f.calls, "enrich")
	if f.failEnrich {
		return nil, fmt.Errorf("enrich failed")
	}
	return &Result{RowsEnriched: 10, UnbucketedAges: 1}, nil
}

func TestRunOrderAndResult(t *testing.T) {
	repo := &fakeRepo{}
	var txCalls int
	svc := NewService(repo, func(ctx context.Context, fn func(ctx context.Context) error) error {
		txCalls++
		return fn(ctx)
	})

	res, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(repo.calls) != 2 || repo.calls[0] != "normalize" || repo.calls[1] != "enrich" {
		t.Errorf("calls = %v, want [normalize enrich]", repo.calls)
	}
	if txCalls != 1 {
		t.Errorf("tx runner calls = %d, want 1", txCalls)
	}
	if res.NamesNormalized != 3 || res.RowsEnriched != 10 || res.UnbucketedAges != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestRunStopsAfterNormalizeError(t *testing.T) {
	repo := &fakeRepo{failNormalize: true}
	svc := NewService(repo, nil)

	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(repo.calls) != 1 {
		t.Errorf("calls = %v, want only normalize", repo.calls)
	}
}

func TestRunPropagatesEnrichError(t *testing.T) {
	svc := NewService(&fakeRepo{failEnrich: true}, nil)
	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNilTxRunnerIsPassthrough(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run with nil tx runner: %v", err)
	}
}
