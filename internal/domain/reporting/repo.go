package reporting

import (
	"context"

	"github.com/admitstats/admitstats/internal/domain/admission"
	"github.com/admitstats/admitstats/internal/domain/quality"
)

// Repository answers every catalog query plus the two views. Implementations
// exist for Postgres (aggregation pushed to the engine) and for the in-memory
// store (explicit groupby-reduce), and must agree on results.
type Repository interface {
	DescriptiveSummary(ctx context.Context) (*Summary, error)

	ByGender(ctx context.Context) ([]CategoryStats, error)
	ByMedicalCondition(ctx context.Context) ([]ConditionStats, error)
	ByAdmissionType(ctx context.Context) ([]CategoryStats, error)
	ByInsuranceProvider(ctx context.Context) ([]CategoryStats, error)
	ByTestResults(ctx context.Context) ([]CategoryStats, error)
	ByMedication(ctx context.Context) ([]CategoryStats, error)
	ByAgeGroup(ctx context.Context) ([]CategoryStats, error)
	ByBloodType(ctx context.Context) ([]CategoryStats, error)

	AdmissionsByMonth(ctx context.Context) ([]MonthlyAdmissions, error)
	RevenueByMonth(ctx context.Context) ([]MonthlyRevenue, error)
	AdmissionsByQuarter(ctx context.Context) ([]QuarterlyAdmissions, error)
	AdmissionsByDayOfWeek(ctx context.Context) ([]WeekdayAdmissions, error)
	AdmissionsByYear(ctx context.Context) ([]YearlyAdmissions, error)
	YearOverYearGrowth(ctx context.Context) ([]YearOverYear, error)
	CumulativeAdmissionsByMonth(ctx context.Context) ([]CumulativeMonthly, error)

	ConditionByAdmissionType(ctx context.Context) ([]ConditionTypeCross, error)
	ConditionByTestResults(ctx context.Context) ([]ConditionResultCross, error)
	ConditionGenderMeans(ctx context.Context) ([]ConditionGenderMean, error)

	AvgStayByCondition(ctx context.Context) ([]ConditionStay, error)
	HighBillingRecords(ctx context.Context) ([]*admission.Admission, error)
	TopExpensiveCases(ctx context.Context) ([]*admission.Admission, error)
	HospitalBillingRanking(ctx context.Context) ([]HospitalRank, error)

	EmergencyVsElective(ctx context.Context) ([]TypeComparison, error)
	DataQuality(ctx context.Context) (*quality.Report, error)

	MonthlyKPIs(ctx context.Context) ([]MonthlyKPI, error)
	ConditionSummaries(ctx context.Context) ([]ConditionSummary, error)
}
