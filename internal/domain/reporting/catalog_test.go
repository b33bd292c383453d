package reporting

import (
	"context"
	"testing"

	"github.com/admitstats/admitstats/internal/domain/admission"
)

// richStore covers every column the catalog groups over.
func richStore() *admission.Store {
	store := admission.NewStore()
	mk := func(name string, age int, gender, blood, condition, admType, result, medication, insurer, hospital string, admitted, discharged int, billing float64) *admission.Admission {
		a := &admission.Admission{
			Name:              strp(name),
			Age:               intp(age),
			Gender:            strp(gender),
			BloodType:         strp(blood),
			MedicalCondition:  strp(condition),
			DateOfAdmission:   day(2024, 1, admitted),
			Doctor:            strp("Dr " + name),
			Hospital:          strp(hospital),
			InsuranceProvider: strp(insurer),
			BillingAmount:     floatp(billing),
			RoomNumber:        intp(100 + admitted),
			AdmissionType:     strp(admType),
			DischargeDate:     timep(day(2024, 1, discharged)),
			Medication:        strp(medication),
			TestResults:       strp(result),
		}
		stay := discharged - admitted
		a.LengthOfStay = &stay
		if group, ok := admission.AgeGroupFor(age); ok {
			a.AgeGroup = &group
		}
		return a
	}
	store.Add(
		mk("Alice Smith", 34, "Female", "A+", "Diabetes", "Emergency", "Abnormal", "Insulin", "Aetna", "General", 1, 5, 1200),
		mk("Bob Jones", 62, "Male", "O-", "Diabetes", "Elective", "Normal", "Insulin", "Cigna", "General", 3, 9, 800),
		mk("Carol White", 17, "Female", "B+", "Asthma", "Urgent", "Inconclusive", "Albuterol", "Aetna", "Mercy", 8, 10, 450),
		mk("Dan Brown", 45, "Male", "AB+", "Flu", "Emergency", "Normal", "Tamiflu", "Medicare", "Mercy", 12, 13, 300),
		mk("Eve Green", 78, "Female", "O+", "Flu", "Elective", "Abnormal", "Tamiflu", "Cigna", "General", 20, 27, 2100),
	)
	return store
}

func TestCatalogIDsUniqueAndComplete(t *testing.T) {
	defs := Definitions()
	if len(defs) != 25 {
		t.Fatalf("catalog has %d definitions, want 25", len(defs))
	}

	seen := make(map[string]bool)
	for _, d := range defs {
		if d.ID == "" || d.Name == "" || d.Description == "" || d.Theme == "" {
			t.Errorf("definition %q has empty metadata: %+v", d.ID, d)
		}
		if d.run == nil {
			t.Errorf("definition %q has no query", d.ID)
		}
		if seen[d.ID] {
			t.Errorf("duplicate catalog id %q", d.ID)
		}
		seen[d.ID] = true
	}
}

func TestFind(t *testing.T) {
	d, ok := Find("by_gender")
	if !ok {
		t.Fatal("Find(by_gender) not found")
	}
	if d.Theme != ThemeCategorical {
		t.Errorf("by_gender theme = %s, want %s", d.Theme, ThemeCategorical)
	}

	if _, ok := Find("no_such_query"); ok {
		t.Error("Find(no_such_query) reported a match")
	}
}

func TestEveryDefinitionRuns(t *testing.T) {
	repo := NewRepoMem(richStore())
	ctx := context.Background()

	for _, d := range Definitions() {
		if _, err := d.Run(ctx, repo); err != nil {
			t.Errorf("%s: %v", d.ID, err)
		}
	}
}

func TestEveryDefinitionRunsOnEmptyStore(t *testing.T) {
	repo := NewRepoMem(admission.NewStore())
	ctx := context.Background()

	for _, d := range Definitions() {
		if _, err := d.Run(ctx, repo); err != nil {
			t.Errorf("%s on empty store: %v", d.ID, err)
		}
	}
}
