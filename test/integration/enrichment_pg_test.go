package integration

import (
	"context"
	"testing"

	"github.com/admitstats/admitstats/internal/domain/admission"
)

func TestNormalizeNamesIdempotent(t *testing.T) {
	ctx := context.Background()
	seedDatabase(t, ctx)

	svc := newPGEnrichment()
	n, err := svc.NormalizeNames(ctx)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if n != seedCSVRows {
		t.Errorf("first pass normalized %d names, want %d", n, seedCSVRows)
	}

	n, err = svc.NormalizeNames(ctx)
	if err != nil {
		t.Fatalf("second normalize: %v", err)
	}
	if n != 0 {
		t.Errorf("second pass normalized %d names, want 0", n)
	}

	adm, err := admission.NewService(admission.NewRepoPG(globalPool)).Get(ctx, 2)
	if err != nil {
		t.Fatalf("get admission 2: %v", err)
	}
	if adm.Name == nil || *adm.Name != "Leslie Terry" {
		t.Errorf("admission 2 name = %v, want Leslie Terry", adm.Name)
	}
}

func TestEnrichDerivedColumns(t *testing.T) {
	ctx := context.Background()
	seedDatabase(t, ctx)

	if _, err := newPGEnrichment().Run(ctx); err != nil {
		t.Fatalf("enrich: %v", err)
	}

	svc := admission.NewService(admission.NewRepoPG(globalPool))

	// No discharge date: stay remains unknown, age 60 buckets as senior.
	open, err := svc.Get(ctx, 14)
	if err != nil {
		t.Fatalf("get admission 14: %v", err)
	}
	if open.LengthOfStay != nil {
		t.Errorf("admission 14 length of stay = %v, want nil (never discharged)", *open.LengthOfStay)
	}
	if open.AgeGroup == nil || *open.AgeGroup != admission.AgeGroupSenior {
		t.Errorf("admission 14 age group = %v, want %s", open.AgeGroup, admission.AgeGroupSenior)
	}

	// Age 138 is out of range for the quality check but still buckets.
	oldest, err := svc.Get(ctx, 12)
	if err != nil {
		t.Fatalf("get admission 12: %v", err)
	}
	if oldest.AgeGroup == nil || *oldest.AgeGroup != admission.AgeGroupElderly {
		t.Errorf("admission 12 age group = %v, want %s", oldest.AgeGroup, admission.AgeGroupElderly)
	}

	// Discharge precedes admission: the negative stay is kept, not clamped.
	backwards, err := svc.Get(ctx, 13)
	if err != nil {
		t.Fatalf("get admission 13: %v", err)
	}
	if backwards.LengthOfStay == nil || *backwards.LengthOfStay != -3 {
		t.Errorf("admission 13 length of stay = %v, want -3", backwards.LengthOfStay)
	}
}
