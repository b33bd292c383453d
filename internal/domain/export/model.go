// Package export produces the flat admission projection for bulk extraction:
// every base column, both derived columns, and the calendar parts of the
// admission date, ordered by date_of_admission then id. Rows are recomputed
// on read and never stored.
package export

import (
	"strconv"

	"github.com/admitstats/admitstats/internal/domain/admission"
)

const dateLayout = "2006-01-02"

// Row is one projection record. The parquet tags drive the Parquet schema;
// csvHeader and record keep the CSV column order in step with it.
type Row struct {
	ID                int64    `parquet:"id" json:"id"`
	Name              *string  `parquet:"name,optional" json:"name"`
	Age               *int32   `parquet:"age,optional" json:"age"`
	Gender            *string  `parquet:"gender,optional" json:"gender"`
	BloodType         *string  `parquet:"blood_type,optional" json:"blood_type"`
	MedicalCondition  *string  `parquet:"medical_condition,optional" json:"medical_condition"`
	DateOfAdmission   string   `parquet:"date_of_admission" json:"date_of_admission"`
	Doctor            *string  `parquet:"doctor,optional" json:"doctor"`
	Hospital          *string  `parquet:"hospital,optional" json:"hospital"`
	InsuranceProvider *string  `parquet:"insurance_provider,optional" json:"insurance_provider"`
	BillingAmount     *float64 `parquet:"billing_amount,optional" json:"billing_amount"`
	RoomNumber        *int32   `parquet:"room_number,optional" json:"room_number"`
	AdmissionType     *string  `parquet:"admission_type,optional" json:"admission_type"`
	DischargeDate     *string  `parquet:"discharge_date,optional" json:"discharge_date"`
	Medication        *string  `parquet:"medication,optional" json:"medication"`
	TestResults       *string  `parquet:"test_results,optional" json:"test_results"`
	LengthOfStay      *int32   `parquet:"length_of_stay,optional" json:"length_of_stay"`
	AgeGroup          *string  `parquet:"age_group,optional" json:"age_group"`
	AdmissionYear     int32    `parquet:"admission_year" json:"admission_year"`
	AdmissionMonth    int32    `parquet:"admission_month" json:"admission_month"`
	AdmissionQuarter  int32    `parquet:"admission_quarter" json:"admission_quarter"`
	AdmissionWeekday  string   `parquet:"admission_weekday" json:"admission_weekday"`
}

var csvHeader = []string{
	"id", "name", "age", "gender", "blood_type", "medical_condition",
	"date_of_admission", "doctor", "hospital", "insurance_provider",
	"billing_amount", "room_number", "admission_type", "discharge_date",
	"medication", "test_results", "length_of_stay", "age_group",
	"admission_year", "admission_month", "admission_quarter",
	"admission_weekday",
}

// rowFromAdmission derives the calendar parts in one place so the Postgres
// and memory backends cannot drift.
func rowFromAdmission(a *admission.Admission) Row {
	d := a.DateOfAdmission
	r := Row{
		ID:                a.ID,
		Name:              a.Name,
		Gender:            a.Gender,
		BloodType:         a.BloodType,
		MedicalCondition:  a.MedicalCondition,
		DateOfAdmission:   d.Format(dateLayout),
		Doctor:            a.Doctor,
		Hospital:          a.Hospital,
		InsuranceProvider: a.InsuranceProvider,
		BillingAmount:     a.BillingAmount,
		AdmissionType:     a.AdmissionType,
		Medication:        a.Medication,
		TestResults:       a.TestResults,
		AgeGroup:          a.AgeGroup,
		AdmissionYear:     int32(d.Year()),
		AdmissionMonth:    int32(d.Month()),
		AdmissionQuarter:  int32((int(d.Month())-1)/3 + 1),
		AdmissionWeekday:  d.Weekday().String(),
	}
	if a.Age != nil {
		v := int32(*a.Age)
		r.Age = &v
	}
	if a.RoomNumber != nil {
		v := int32(*a.RoomNumber)
		r.RoomNumber = &v
	}
	if a.DischargeDate != nil {
		s := a.DischargeDate.Format(dateLayout)
		r.DischargeDate = &s
	}
	if a.LengthOfStay != nil {
		v := int32(*a.LengthOfStay)
		r.LengthOfStay = &v
	}
	return r
}

// record renders the row as CSV cells in csvHeader order; nil prints empty.
func (r Row) record() []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		strOrEmpty(r.Name),
		int32OrEmpty(r.Age),
		strOrEmpty(r.Gender),
		strOrEmpty(r.BloodType),
		strOrEmpty(r.MedicalCondition),
		r.DateOfAdmission,
		strOrEmpty(r.Doctor),
		strOrEmpty(r.Hospital),
		strOrEmpty(r.InsuranceProvider),
		floatOrEmpty(r.BillingAmount),
		int32OrEmpty(r.RoomNumber),
		strOrEmpty(r.AdmissionType),
		strOrEmpty(r.DischargeDate),
		strOrEmpty(r.Medication),
		strOrEmpty(r.TestResults),
		int32OrEmpty(r.LengthOfStay),
		strOrEmpty(r.AgeGroup),
		strconv.FormatInt(int64(r.AdmissionYear), 10),
		strconv.FormatInt(int64(r.AdmissionMonth), 10),
		strconv.FormatInt(int64(r.AdmissionQuarter), 10),
		r.AdmissionWeekday,
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func int32OrEmpty(n *int32) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(int64(*n), 10)
}

// floatOrEmpty keeps full precision; the export is extraction, not display.
func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
