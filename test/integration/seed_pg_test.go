package integration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/admitstats/admitstats/internal/domain/admission"
)

func TestSeedSkipsUnusableRows(t *testing.T) {
	ctx := context.Background()
	truncate(t)

	const csv = `Name,Age,Gender,Blood Type,Medical Condition,Date of Admission,Doctor,Hospital,Insurance Provider,Billing Amount,Room Number,Admission Type,Discharge Date,Medication,Test Results
good row,30,Male,B-,Cancer,2024-01-31,Doc,Hosp,Ins,100,1,Urgent,2024-02-02,Aspirin,Normal
bad date,30,Male,B-,Cancer,not-a-date,Doc,Hosp,Ins,100,1,Urgent,,Aspirin,Normal
no date,30,Male,B-,Cancer,,Doc,Hosp,Ins,100,1,Urgent,,Aspirin,Normal
`

	svc := admission.NewService(admission.NewRepoPG(globalPool))
	res, err := svc.SeedFromCSV(ctx, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if res.RowsLoaded != 1 {
		t.Errorf("RowsLoaded = %d, want 1", res.RowsLoaded)
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("Skipped %d rows, want 2: %v", len(res.Skipped), res.Skipped)
	}
	if res.Skipped[0].Row != 3 || res.Skipped[1].Row != 4 {
		t.Errorf("skipped rows %d and %d, want 3 and 4", res.Skipped[0].Row, res.Skipped[1].Row)
	}

	count, err := svc.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestGetNotFound(t *testing.T) {
	ctx := context.Background()
	truncate(t)

	svc := admission.NewService(admission.NewRepoPG(globalPool))
	_, err := svc.Get(ctx, 99)
	if !errors.Is(err, admission.ErrNotFound) {
		t.Errorf("Get on empty table returned %v, want ErrNotFound", err)
	}
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	seedDatabase(t, ctx)

	svc := admission.NewService(admission.NewRepoPG(globalPool))

	page, total, err := svc.List(ctx, 10, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != seedCSVRows {
		t.Errorf("total = %d, want %d", total, seedCSVRows)
	}
	if len(page) != seedCSVRows-10 {
		t.Errorf("page beyond offset 10 has %d rows, want %d", len(page), seedCSVRows-10)
	}

	empty, _, err := svc.List(ctx, 10, 100)
	if err != nil {
		t.Fatalf("list past the end: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("page past the end has %d rows, want 0", len(empty))
	}
}
