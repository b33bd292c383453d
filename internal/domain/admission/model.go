package admission

import (
	"strings"
	"time"
	"unicode"
)

// Admission maps to the patient_admissions table. Nullable columns are
// pointers; LengthOfStay and AgeGroup stay nil until the enrichment pass
// computes them.
type Admission struct {
	ID                int64      `db:"id" json:"id"`
	Name              *string    `db:"name" json:"name,omitempty"`
	Age               *int       `db:"age" json:"age,omitempty"`
	Gender            *string    `db:"gender" json:"gender,omitempty"`
	BloodType         *string    `db:"blood_type" json:"blood_type,omitempty"`
	MedicalCondition  *string    `db:"medical_condition" json:"medical_condition,omitempty"`
	DateOfAdmission   time.Time  `db:"date_of_admission" json:"date_of_admission"`
	Doctor            *string    `db:"doctor" json:"doctor,omitempty"`
	Hospital          *string    `db:"hospital" json:"hospital,omitempty"`
	InsuranceProvider *string    `db:"insurance_provider" json:"insurance_provider,omitempty"`
	BillingAmount     *float64   `db:"billing_amount" json:"billing_amount,omitempty"`
	RoomNumber        *int       `db:"room_number" json:"room_number,omitempty"`
	AdmissionType     *string    `db:"admission_type" json:"admission_type,omitempty"`
	DischargeDate     *time.Time `db:"discharge_date" json:"discharge_date,omitempty"`
	Medication        *string    `db:"medication" json:"medication,omitempty"`
	TestResults       *string    `db:"test_results" json:"test_results,omitempty"`
	LengthOfStay      *int       `db:"length_of_stay" json:"length_of_stay,omitempty"`
	AgeGroup          *string    `db:"age_group" json:"age_group,omitempty"`
}

// Age bucket labels. The order of AgeGroupOrder is the display sort order.
const (
	AgeGroupMinor      = "Minor"
	AgeGroupYoungAdult = "Young Adult"
	AgeGroupMiddleAge  = "Middle Age"
	AgeGroupSenior     = "Senior"
	AgeGroupElderly    = "Elderly"
)

var AgeGroupOrder = []string{
	AgeGroupMinor,
	AgeGroupYoungAdult,
	AgeGroupMiddleAge,
	AgeGroupSenior,
	AgeGroupElderly,
}

// AgeGroupRank returns the position of a bucket label within AgeGroupOrder,
// or len(AgeGroupOrder) for unknown labels so they sort last.
func AgeGroupRank(label string) int {
	for i, g := range AgeGroupOrder {
		if g == label {
			return i
		}
	}
	return len(AgeGroupOrder)
}

// AgeGroupFor buckets an age using the cut points 18, 36, 56 and 71:
// Minor 0-17, Young Adult 18-35, Middle Age 36-55, Senior 56-70, Elderly 71
// and up. The second return value is false when no bucket covers the age
// (negative input); callers surface that instead of defaulting.
func AgeGroupFor(age int) (string, bool) {
	switch {
	case age < 0:
		return "", false
	case age < 18:
		return AgeGroupMinor, true
	case age < 36:
		return AgeGroupYoungAdult, true
	case age < 56:
		return AgeGroupMiddleAge, true
	case age < 71:
		return AgeGroupSenior, true
	default:
		return AgeGroupElderly, true
	}
}

// LengthOfStayDays returns the whole-day difference between admission and
// discharge. Equal dates give 0; a discharge before admission gives a
// negative count, which is kept as-is so the quality checks can flag it.
func LengthOfStayDays(admission, discharge time.Time) int {
	a := time.Date(admission.Year(), admission.Month(), admission.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(discharge.Year(), discharge.Month(), discharge.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(a).Hours() / 24)
}

// NormalizeName rewrites a name to title case with the same word rules as
// Postgres initcap: a letter after a non-alphanumeric rune is uppercased,
// everything else is lowercased. Applying it twice gives the same result as
// applying it once. Empty strings pass through.
func NormalizeName(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	wasAlnum := false
	for _, r := range s {
		if wasAlnum {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		wasAlnum = unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return b.String()
}
