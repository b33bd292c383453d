// Package enrichment populates the derived columns: length_of_stay and
// age_group. Derivation is one-shot and idempotent; rows the rules cannot
// place (ages below zero) keep NULL and are reported, never defaulted.
package enrichment

import "context"

// Result summarizes one derivation pass.
type Result struct {
	RowsEnriched   int64 `json:"rows_enriched"`
	UnbucketedAges int64 `json:"unbucketed_ages"`
}

// RunResult summarizes a full stage run: normalization then derivation.
type RunResult struct {
	NamesNormalized int64 `json:"names_normalized"`
	RowsEnriched    int64 `json:"rows_enriched"`
	UnbucketedAges  int64 `json:"unbucketed_ages"`
}

type Repository interface {
	// NormalizeNames title-cases patient names in place and returns the
	// number of rows changed. Running it twice changes nothing the
	// second time.
	NormalizeNames(ctx context.Context) (int64, error)

	// Enrich recomputes both derived columns for every row.
	Enrich(ctx context.Context) (*Result, error)
}
