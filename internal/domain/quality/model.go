// Package quality counts data defects in the admissions table. Defects are
// reported, never corrected: a negative billing amount stays negative so the
// numbers downstream can be traced back to the rows that produced them.
package quality

// Age bounds outside which a recorded age is considered defective.
const (
	MinAge = 0
	MaxAge = 120
)

// Report holds one defect count per rule plus the population size.
// Zero counts on an empty table are a valid result, not an error.
type Report struct {
	TotalRecords             int64 `json:"total_records"`
	NegativeBilling          int64 `json:"negative_billing_count"`
	AgeOutOfRange            int64 `json:"age_out_of_range_count"`
	DischargeBeforeAdmission int64 `json:"discharge_before_admission_count"`
}

// Clean reports whether no defect rule fired.
func (r *Report) Clean() bool {
	return r.NegativeBilling == 0 && r.AgeOutOfRange == 0 && r.DischargeBeforeAdmission == 0
}
