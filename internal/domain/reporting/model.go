// Package reporting implements the fixed catalog of read-only aggregate
// queries over patient_admissions, the two summary views, and the batch
// runner. Every query is parameterless; rounding is half-up with 2 decimals
// for currency and percentages and 1 decimal for day counts and ages.
package reporting

import "time"

// Summary is the single descriptive_summary row.
type Summary struct {
	TotalRecords    int64      `json:"total_records"`
	UniquePatients  int64      `json:"unique_patients"`
	UniqueHospitals int64      `json:"unique_hospitals"`
	UniqueDoctors   int64      `json:"unique_doctors"`
	FirstAdmission  *time.Time `json:"first_admission"`
	LastAdmission   *time.Time `json:"last_admission"`
	AvgAge          *float64   `json:"avg_age"`
	AvgBilling      *float64   `json:"avg_billing"`
	AvgLengthOfStay *float64   `json:"avg_length_of_stay"`
}

// CategoryStats is one group of a categorical breakdown. Rows whose group
// column is NULL are left out; pct_of_total is taken against the grouped
// population so the percentages of a breakdown sum to 100.
type CategoryStats struct {
	Group          string   `json:"group"`
	AdmissionCount int64    `json:"admission_count"`
	PctOfTotal     float64  `json:"pct_of_total"`
	AvgBilling     *float64 `json:"avg_billing"`
	MinBilling     *float64 `json:"min_billing"`
	MaxBilling     *float64 `json:"max_billing"`
	TotalBilling   *float64 `json:"total_billing"`
	AvgAge         *float64 `json:"avg_age,omitempty"`
	AvgStayDays    *float64 `json:"avg_stay_days,omitempty"`
}

// ConditionStats is one row of by_medical_condition, which carries its own
// column contract (case_count, *_cost) for BI consumers.
type ConditionStats struct {
	MedicalCondition string   `json:"medical_condition"`
	CaseCount        int64    `json:"case_count"`
	PctOfTotal       float64  `json:"pct_of_total"`
	AvgCost          *float64 `json:"avg_cost"`
	MinCost          *float64 `json:"min_cost"`
	MaxCost          *float64 `json:"max_cost"`
	TotalCost        *float64 `json:"total_cost"`
	AvgStayDays      *float64 `json:"avg_stay_days"`
}

type MonthlyAdmissions struct {
	Month          string   `json:"month"`
	AdmissionCount int64    `json:"admission_count"`
	TotalBilling   *float64 `json:"total_billing"`
	AvgBilling     *float64 `json:"avg_billing"`
}

type MonthlyRevenue struct {
	Month        string   `json:"month"`
	TotalBilling *float64 `json:"total_billing"`
	AvgBilling   *float64 `json:"avg_billing"`
	AvgStayDays  *float64 `json:"avg_stay_days"`
}

type QuarterlyAdmissions struct {
	Quarter        string   `json:"quarter"`
	AdmissionCount int64    `json:"admission_count"`
	TotalBilling   *float64 `json:"total_billing"`
}

type WeekdayAdmissions struct {
	Weekday        string   `json:"weekday"`
	AdmissionCount int64    `json:"admission_count"`
	PctOfTotal     float64  `json:"pct_of_total"`
	AvgBilling     *float64 `json:"avg_billing"`
}

type YearlyAdmissions struct {
	Year            int      `json:"year"`
	AdmissionCount  int64    `json:"admission_count"`
	UniqueHospitals int64    `json:"unique_hospitals"`
	TotalBilling    *float64 `json:"total_billing"`
	AvgBilling      *float64 `json:"avg_billing"`
}

// YearOverYear compares each observed year with the previous observed one.
// PrevCount and GrowthPct are null for the first year on record.
type YearOverYear struct {
	Year           int      `json:"year"`
	AdmissionCount int64    `json:"admission_count"`
	PrevCount      *int64   `json:"prev_count"`
	GrowthPct      *float64 `json:"growth_pct"`
}

type CumulativeMonthly struct {
	Month           string `json:"month"`
	AdmissionCount  int64  `json:"admission_count"`
	CumulativeCount int64  `json:"cumulative_count"`
}

// ConditionTypeCross percentages sum to 100 within each condition.
type ConditionTypeCross struct {
	MedicalCondition   string  `json:"medical_condition"`
	AdmissionType      string  `json:"admission_type"`
	Count              int64   `json:"count"`
	PctWithinCondition float64 `json:"pct_within_condition"`
}

type ConditionResultCross struct {
	MedicalCondition   string  `json:"medical_condition"`
	TestResults        string  `json:"test_results"`
	Count              int64   `json:"count"`
	PctWithinCondition float64 `json:"pct_within_condition"`
}

type ConditionGenderMean struct {
	MedicalCondition string   `json:"medical_condition"`
	Gender           string   `json:"gender"`
	AvgAge           *float64 `json:"avg_age"`
	AvgBilling       *float64 `json:"avg_billing"`
	AvgStayDays      *float64 `json:"avg_stay_days"`
}

type ConditionStay struct {
	MedicalCondition string   `json:"medical_condition"`
	CaseCount        int64    `json:"case_count"`
	AvgStayDays      *float64 `json:"avg_stay_days"`
	MinStayDays      *int     `json:"min_stay_days"`
	MaxStayDays      *int     `json:"max_stay_days"`
}

// HospitalRank rows exist only for hospitals with at least five admissions
// and at least one billed stay; ranks are dense over the rounded mean.
type HospitalRank struct {
	Hospital       string  `json:"hospital"`
	AdmissionCount int64   `json:"admission_count"`
	AvgBilling     float64 `json:"avg_billing"`
	TotalBilling   float64 `json:"total_billing"`
	BillingRank    int     `json:"billing_rank"`
}

type TypeComparison struct {
	AdmissionType  string   `json:"admission_type"`
	AdmissionCount int64    `json:"admission_count"`
	AvgBilling     *float64 `json:"avg_billing"`
	AvgStayDays    *float64 `json:"avg_stay_days"`
	AvgAge         *float64 `json:"avg_age"`
	TotalBilling   *float64 `json:"total_billing"`
}

// MonthlyKPI mirrors the monthly_kpis view.
type MonthlyKPI struct {
	Month          string   `json:"month"`
	AdmissionCount int64    `json:"admission_count"`
	UniquePatients int64    `json:"unique_patients"`
	TotalBilling   *float64 `json:"total_billing"`
	AvgBilling     *float64 `json:"avg_billing"`
	AvgStayDays    *float64 `json:"avg_stay_days"`
}

// ConditionSummary mirrors the condition_summary view.
type ConditionSummary struct {
	MedicalCondition string   `json:"medical_condition"`
	CaseCount        int64    `json:"case_count"`
	AvgCost          *float64 `json:"avg_cost"`
	MinCost          *float64 `json:"min_cost"`
	MaxCost          *float64 `json:"max_cost"`
	TotalCost        *float64 `json:"total_cost"`
	AvgStayDays      *float64 `json:"avg_stay_days"`
	AbnormalCount    int64    `json:"abnormal_count"`
}
