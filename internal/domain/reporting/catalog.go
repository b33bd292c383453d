package reporting

import (
	"context"
	"errors"
)

// ErrUnknownQuery is returned when a catalog id does not exist.
var ErrUnknownQuery = errors.New("unknown report query")

// Catalog themes, used to group listings.
const (
	ThemeDescriptive = "descriptive"
	ThemeCategorical = "categorical"
	ThemeTemporal    = "temporal"
	ThemeCrossTab    = "cross_tab"
	ThemeRanking     = "ranking"
	ThemeComparative = "comparative"
	ThemeQuality     = "quality"
)

// Definition is one catalog entry: a stable id, display metadata, and the
// query behind it. Every query is parameterless and read-only.
type Definition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Theme       string `json:"theme"`

	run func(ctx context.Context, repo Repository) (interface{}, error)
}

// Run executes the query against the given repository.
func (d Definition) Run(ctx context.Context, repo Repository) (interface{}, error) {
	return d.run(ctx, repo)
}

var catalog = []Definition{
	{
		ID:          "descriptive_summary",
		Name:        "Descriptive summary",
		Description: "Record count, distinct patients/hospitals/doctors, admission date range, mean age, billing and stay.",
		Theme:       ThemeDescriptive,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.DescriptiveSummary(ctx)
		},
	},
	{
		ID:          "by_gender",
		Name:        "Admissions by gender",
		Description: "Count, share and billing statistics per gender, with mean age.",
		Theme:       ThemeCategorical,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.ByGender(ctx)
		},
	},
	{
		ID:          "by_medical_condition",
		Name:        "Admissions by medical condition",
		Description: "Case count, share, cost statistics and mean stay per condition.",
		Theme:       ThemeCategorical,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.ByMedicalCondition(ctx)
		},
	},
	{
		ID:          "by_admission_type",
		Name:        "Admissions by admission type",
		Description: "Count, share and billing statistics per admission type, with mean stay.",
		Theme:       ThemeCategorical,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.ByAdmissionType(ctx)
		},
	},
	{
		ID:          "by_insurance_provider",
		Name:        "Admissions by insurance provider",
		Description: "Count, share and billing statistics per insurance provider.",
		Theme:       ThemeCategorical,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.ByInsuranceProvider(ctx)
		},
	},
	{
		ID:          "by_test_results",
		Name:        "Admissions by test results",
		Description: "Count, share and billing statistics per test-result label.",
		Theme:       ThemeCategorical,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.ByTestResults(ctx)
		},
	},
	{
		ID:          "by_medication",
		Name:        "Admissions by medication",
		Description: "Count, share and billing statistics per prescribed medication.",
		Theme:       ThemeCategorical,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.ByMedication(ctx)
		},
	},
	{
		ID:          "by_age_group",
		Name:        "Admissions by age group",
		Description: "Count, share, billing statistics and mean age per derived age bucket, in bucket order.",
		Theme:       ThemeCategorical,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.ByAgeGroup(ctx)
		},
	},
	{
		ID:          "by_blood_type",
		Name:        "Admissions by blood type",
		Description: "Count, share and billing statistics per blood type.",
		Theme:       ThemeCategorical,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.ByBloodType(ctx)
		},
	},
	{
		ID:          "admissions_by_month",
		Name:        "Admissions by month",
		Description: "Monthly admission counts with total and mean billing, calendar-ordered.",
		Theme:       ThemeTemporal,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.AdmissionsByMonth(ctx)
		},
	},
	{
		ID:          "revenue_by_month",
		Name:        "Revenue by month",
		Description: "Monthly billing totals and means with mean stay, calendar-ordered.",
		Theme:       ThemeTemporal,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.RevenueByMonth(ctx)
		},
	},
	{
		ID:          "admissions_by_quarter",
		Name:        "Admissions by quarter",
		Description: "Quarterly admission counts and billing totals, calendar-ordered.",
		Theme:       ThemeTemporal,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.AdmissionsByQuarter(ctx)
		},
	},
	{
		ID:          "admissions_by_day_of_week",
		Name:        "Admissions by day of week",
		Description: "Admission counts, shares and mean billing per weekday, Monday through Sunday.",
		Theme:       ThemeTemporal,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.AdmissionsByDayOfWeek(ctx)
		},
	},
	{
		ID:          "admissions_by_year",
		Name:        "Admissions by year",
		Description: "Yearly admission counts, distinct hospitals and billing statistics.",
		Theme:       ThemeTemporal,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.AdmissionsByYear(ctx)
		},
	},
	{
		ID:          "year_over_year_growth",
		Name:        "Year-over-year growth",
		Description: "Yearly admission counts with previous-year counts and growth percentage.",
		Theme:       ThemeTemporal,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.YearOverYearGrowth(ctx)
		},
	},
	{
		ID:          "cumulative_admissions_by_month",
		Name:        "Cumulative admissions by month",
		Description: "Monthly admission counts with a running total in calendar order.",
		Theme:       ThemeTemporal,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.CumulativeAdmissionsByMonth(ctx)
		},
	},
	{
		ID:          "condition_by_admission_type",
		Name:        "Condition by admission type",
		Description: "Counts per (condition, admission type) with shares inside each condition.",
		Theme:       ThemeCrossTab,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.ConditionByAdmissionType(ctx)
		},
	},
	{
		ID:          "condition_by_test_results",
		Name:        "Condition by test results",
		Description: "Counts per (condition, test result) with shares inside each condition.",
		Theme:       ThemeCrossTab,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.ConditionByTestResults(ctx)
		},
	},
	{
		ID:          "condition_gender_means",
		Name:        "Condition and gender means",
		Description: "Mean age, billing and stay per (condition, gender) pair.",
		Theme:       ThemeCrossTab,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.ConditionGenderMeans(ctx)
		},
	},
	{
		ID:          "avg_stay_by_condition",
		Name:        "Average stay by condition",
		Description: "Mean, minimum and maximum length of stay per condition.",
		Theme:       ThemeRanking,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.AvgStayByCondition(ctx)
		},
	},
	{
		ID:          "high_billing_records",
		Name:        "High billing records",
		Description: "Full admission rows billed at or above the 90th percentile.",
		Theme:       ThemeRanking,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.HighBillingRecords(ctx)
		},
	},
	{
		ID:          "top_expensive_cases",
		Name:        "Top expensive cases",
		Description: "The ten most expensive admissions.",
		Theme:       ThemeRanking,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.TopExpensiveCases(ctx)
		},
	},
	{
		ID:          "hospital_billing_ranking",
		Name:        "Hospital billing ranking",
		Description: "Hospitals with at least five admissions, dense-ranked by mean billing, top twenty.",
		Theme:       ThemeRanking,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.HospitalBillingRanking(ctx)
		},
	},
	{
		ID:          "emergency_vs_elective",
		Name:        "Emergency vs elective",
		Description: "Count, billing, stay and age comparison between emergency and elective admissions.",
		Theme:       ThemeComparative,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.EmergencyVsElective(ctx)
		},
	},
	{
		ID:          "data_quality",
		Name:        "Data quality",
		Description: "Counts of negative billing, out-of-range ages and discharges before admission.",
		Theme:       ThemeQuality,
		run: func(ctx context.Context, repo Repository) (interface{}, error) {
			return repo.DataQuality(ctx)
		},
	},
}

// Definitions lists the catalog in its canonical order.
func Definitions() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Find looks a definition up by id.
func Find(id string) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}
