package integration

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"

	"github.com/admitstats/admitstats/internal/domain/admission"
	"github.com/admitstats/admitstats/internal/domain/export"
	"github.com/admitstats/admitstats/internal/domain/quality"
	"github.com/admitstats/admitstats/internal/domain/reporting"
)

// TestPipelineEndToEnd walks the whole lifecycle against Postgres:
// seed, enrich, quality check, report catalog, views, export.
func TestPipelineEndToEnd(t *testing.T) {
	ctx := context.Background()

	// Seed
	seedRes := seedDatabase(t, ctx)
	if _, err := uuid.Parse(seedRes.BatchID); err != nil {
		t.Errorf("batch id %q is not a uuid: %v", seedRes.BatchID, err)
	}
	if len(seedRes.Skipped) != 0 {
		t.Errorf("skipped %d rows, want 0: %v", len(seedRes.Skipped), seedRes.Skipped)
	}

	// Enrich
	enr := newPGEnrichment()
	runRes, err := enr.Run(ctx)
	if err != nil {
		t.Fatalf("enrichment run: %v", err)
	}
	if runRes.NamesNormalized != seedCSVRows {
		t.Errorf("NamesNormalized = %d, want %d (every fixture name is raw-cased)", runRes.NamesNormalized, seedCSVRows)
	}
	if runRes.RowsEnriched != seedCSVRows {
		t.Errorf("RowsEnriched = %d, want %d", runRes.RowsEnriched, seedCSVRows)
	}
	if runRes.UnbucketedAges != 0 {
		t.Errorf("UnbucketedAges = %d, want 0", runRes.UnbucketedAges)
	}

	// A second pass finds nothing left to normalize.
	again, err := enr.Run(ctx)
	if err != nil {
		t.Fatalf("second enrichment run: %v", err)
	}
	if again.NamesNormalized != 0 {
		t.Errorf("second run NamesNormalized = %d, want 0", again.NamesNormalized)
	}

	// Quality
	report, err := quality.NewService(quality.NewRepoPG(globalPool)).Check(ctx)
	if err != nil {
		t.Fatalf("quality check: %v", err)
	}
	if report.TotalRecords != seedCSVRows {
		t.Errorf("TotalRecords = %d, want %d", report.TotalRecords, seedCSVRows)
	}
	if report.NegativeBilling != 1 {
		t.Errorf("NegativeBilling = %d, want 1", report.NegativeBilling)
	}
	if report.AgeOutOfRange != 1 {
		t.Errorf("AgeOutOfRange = %d, want 1", report.AgeOutOfRange)
	}
	if report.DischargeBeforeAdmission != 1 {
		t.Errorf("DischargeBeforeAdmission = %d, want 1", report.DischargeBeforeAdmission)
	}
	if report.Clean() {
		t.Error("Clean() = true for a fixture with one defect per rule")
	}

	// Reports
	repSvc := reporting.NewService(reporting.NewRepoPG(globalPool))
	batch := repSvc.RunAll(ctx)
	if batch.Queries != len(repSvc.Catalog()) {
		t.Errorf("Queries = %d, want %d", batch.Queries, len(repSvc.Catalog()))
	}
	if batch.Failed != 0 {
		for _, res := range batch.Results {
			if res.Error != "" {
				t.Errorf("report %s failed: %s", res.ID, res.Error)
			}
		}
		t.Fatalf("Failed = %d, want 0", batch.Failed)
	}

	// Views
	kpis, err := repSvc.MonthlyKPIs(ctx)
	if err != nil {
		t.Fatalf("monthly kpis: %v", err)
	}
	if len(kpis) != 13 {
		t.Fatalf("got %d KPI months, want 13", len(kpis))
	}
	if kpis[0].Month != "2019-12" || kpis[len(kpis)-1].Month != "2024-08" {
		t.Errorf("KPI months run %s..%s, want 2019-12..2024-08", kpis[0].Month, kpis[len(kpis)-1].Month)
	}

	sums, err := repSvc.ConditionSummaries(ctx)
	if err != nil {
		t.Fatalf("condition summaries: %v", err)
	}
	if len(sums) != 6 {
		t.Fatalf("got %d condition summaries, want 6", len(sums))
	}
	if sums[0].MedicalCondition != "Cancer" || sums[0].CaseCount != 5 {
		t.Errorf("top condition = %s (%d cases), want Cancer (5)", sums[0].MedicalCondition, sums[0].CaseCount)
	}

	// Reads see the normalized names and derived columns.
	admSvc := admission.NewService(admission.NewRepoPG(globalPool))
	first, err := admSvc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get admission 1: %v", err)
	}
	if first.Name == nil || *first.Name != "Bobby Jackson" {
		t.Errorf("admission 1 name = %v, want Bobby Jackson", first.Name)
	}
	if first.AgeGroup == nil || *first.AgeGroup != admission.AgeGroupYoungAdult {
		t.Errorf("admission 1 age group = %v, want %s", first.AgeGroup, admission.AgeGroupYoungAdult)
	}
	if first.LengthOfStay == nil || *first.LengthOfStay != 2 {
		t.Errorf("admission 1 length of stay = %v, want 2", first.LengthOfStay)
	}

	list, total, err := admSvc.List(ctx, 5, 0)
	if err != nil {
		t.Fatalf("list admissions: %v", err)
	}
	if total != seedCSVRows {
		t.Errorf("list total = %d, want %d", total, seedCSVRows)
	}
	wantIDs := []int64{13, 11, 9, 10, 8}
	for i, a := range list {
		if a.ID != wantIDs[i] {
			t.Errorf("list[%d].ID = %d, want %d (date order)", i, a.ID, wantIDs[i])
		}
	}

	// Export
	expSvc := export.NewService(export.NewRepoPG(globalPool))
	rows, err := expSvc.Rows(ctx)
	if err != nil {
		t.Fatalf("export rows: %v", err)
	}
	if len(rows) != seedCSVRows {
		t.Fatalf("exported %d rows, want %d", len(rows), seedCSVRows)
	}
	earliest := rows[0]
	if earliest.ID != 13 {
		t.Errorf("first export row id = %d, want 13 (earliest admission)", earliest.ID)
	}
	if earliest.AdmissionYear != 2019 || earliest.AdmissionQuarter != 4 || earliest.AdmissionWeekday != "Thursday" {
		t.Errorf("calendar parts = %d Q%d %s, want 2019 Q4 Thursday",
			earliest.AdmissionYear, earliest.AdmissionQuarter, earliest.AdmissionWeekday)
	}
	if earliest.LengthOfStay == nil || *earliest.LengthOfStay != -3 {
		t.Errorf("length of stay = %v, want -3 (discharge precedes admission in the fixture)", earliest.LengthOfStay)
	}

	var csvBuf bytes.Buffer
	if err := expSvc.WriteCSV(ctx, &csvBuf); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	records, err := csv.NewReader(&csvBuf).ReadAll()
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}
	if len(records) != seedCSVRows+1 {
		t.Errorf("csv has %d lines, want %d", len(records), seedCSVRows+1)
	}

	tmp, err := os.CreateTemp(t.TempDir(), "pipeline_*.parquet")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if err := expSvc.WriteParquet(ctx, tmp); err != nil {
		t.Fatalf("write parquet: %v", err)
	}
	if err := tmp.Close(); err != nil {
		t.Fatalf("close temp file: %v", err)
	}
	back, err := parquet.ReadFile[export.Row](tmp.Name())
	if err != nil {
		t.Fatalf("read parquet back: %v", err)
	}
	if len(back) != seedCSVRows {
		t.Errorf("parquet has %d rows, want %d", len(back), seedCSVRows)
	}
	if back[0].ID != 13 || back[0].AdmissionWeekday != "Thursday" {
		t.Errorf("parquet first row = id %d %s, want id 13 Thursday", back[0].ID, back[0].AdmissionWeekday)
	}
}
