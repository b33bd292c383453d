package enrichment

import (
	"context"
	"testing"
	"time"

	"github.com/admitstats/admitstats/internal/domain/admission"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strp(s string) *string        { return &s }
func intp(n int) *int              { return &n }
func timep(t time.Time) *time.Time { return &t }

func TestNormalizeNames(t *testing.T) {
	store := admission.NewStore()
	store.Add(
		&admission.Admission{Name: strp("bobby JacksOn"), DateOfAdmission: day(2024, 1, 1)},
		&admission.Admission{Name: strp("Already Fine"), DateOfAdmission: day(2024, 1, 2)},
		&admission.Admission{DateOfAdmission: day(2024, 1, 3)},
	)
	repo := NewRepoMem(store)
	ctx := context.Background()

	changed, err := repo.NormalizeNames(ctx)
	if err != nil {
		t.Fatalf("NormalizeNames: %v", err)
	}
	if changed != 1 {
		t.Errorf("changed = %d, want 1", changed)
	}

	rows := store.All()
	if *rows[0].Name != "Bobby Jackson" {
		t.Errorf("name = %q, want Bobby Jackson", *rows[0].Name)
	}
	if rows[2].Name != nil {
		t.Errorf("nil name mutated to %v", rows[2].Name)
	}

	// Second run finds nothing left to change.
	changed, err = repo.NormalizeNames(ctx)
	if err != nil {
		t.Fatalf("NormalizeNames again: %v", err)
	}
	if changed != 0 {
		t.Errorf("second run changed = %d, want 0", changed)
	}
}

func TestEnrichLengthOfStay(t *testing.T) {
	store := admission.NewStore()
	store.Add(
		&admission.Admission{DateOfAdmission: day(2024, 1, 10), DischargeDate: timep(day(2024, 1, 15))},
		&admission.Admission{DateOfAdmission: day(2024, 2, 1)},
		&admission.Admission{DateOfAdmission: day(2024, 3, 10), DischargeDate: timep(day(2024, 3, 5))},
	)
	repo := NewRepoMem(store)

	res, err := repo.Enrich(context.Background())
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if res.RowsEnriched != 3 {
		t.Errorf("RowsEnriched = %d, want 3", res.RowsEnriched)
	}

	rows := store.All()
	if rows[0].LengthOfStay == nil || *rows[0].LengthOfStay != 5 {
		t.Errorf("LengthOfStay = %v, want 5", rows[0].LengthOfStay)
	}
	if rows[1].LengthOfStay != nil {
		t.Errorf("LengthOfStay without discharge = %v, want nil", rows[1].LengthOfStay)
	}
	// Discharge before admission stays negative so the defect is visible.
	if rows[2].LengthOfStay == nil || *rows[2].LengthOfStay != -5 {
		t.Errorf("LengthOfStay = %v, want -5", rows[2].LengthOfStay)
	}
}

func TestEnrichAgeGroups(t *testing.T) {
	store := admission.NewStore()
	store.Add(
		&admission.Admission{Age: intp(17), DateOfAdmission: day(2024, 1, 1)},
		&admission.Admission{Age: intp(18), DateOfAdmission: day(2024, 1, 2)},
		&admission.Admission{Age: intp(70), DateOfAdmission: day(2024, 1, 3)},
		&admission.Admission{Age: intp(71), DateOfAdmission: day(2024, 1, 4)},
		&admission.Admission{Age: intp(-2), DateOfAdmission: day(2024, 1, 5)},
		&admission.Admission{DateOfAdmission: day(2024, 1, 6)},
	)
	repo := NewRepoMem(store)

	res, err := repo.Enrich(context.Background())
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}

	rows := store.All()
	wantGroups := []*string{
		strp(admission.AgeGroupMinor),
		strp(admission.AgeGroupYoungAdult),
		strp(admission.AgeGroupSenior),
		strp(admission.AgeGroupElderly),
		nil,
		nil,
	}
	for i, want := range wantGroups {
		got := rows[i].AgeGroup
		switch {
		case want == nil && got != nil:
			t.Errorf("rows[%d].AgeGroup = %q, want nil", i, *got)
		case want != nil && (got == nil || *got != *want):
			t.Errorf("rows[%d].AgeGroup = %v, want %q", i, got, *want)
		}
	}

	// Only the negative age counts as unbucketable; a missing age is
	// unknown, not an error.
	if res.UnbucketedAges != 1 {
		t.Errorf("UnbucketedAges = %d, want 1", res.UnbucketedAges)
	}
}

func TestEnrichRecomputes(t *testing.T) {
	stale := 99
	store := admission.NewStore()
	store.Add(&admission.Admission{
		DateOfAdmission: day(2024, 1, 1),
		LengthOfStay:    &stale,
	})
	repo := NewRepoMem(store)

	if _, err := repo.Enrich(context.Background()); err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if got := store.All()[0].LengthOfStay; got != nil {
		t.Errorf("stale LengthOfStay survived as %v, want nil", got)
	}
}
