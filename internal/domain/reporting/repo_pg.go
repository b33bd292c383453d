package reporting

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/admitstats/admitstats/internal/domain/admission"
	"github.com/admitstats/admitstats/internal/domain/quality"
	"github.com/admitstats/admitstats/internal/platform/db"
)

type repoPG struct {
	pool    *pgxpool.Pool
	quality quality.Repository
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool, quality: quality.NewRepoPG(pool)}
}

type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) DescriptiveSummary(ctx context.Context) (*Summary, error) {
	var s Summary
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT name), COUNT(DISTINCT hospital), COUNT(DISTINCT doctor),
		       MIN(date_of_admission), MAX(date_of_admission),
		       ROUND(AVG(age), 1), ROUND(AVG(billing_amount), 2), ROUND(AVG(length_of_stay), 1)
		FROM patient_admissions`,
	).Scan(
		&s.TotalRecords, &s.UniquePatients, &s.UniqueHospitals, &s.UniqueDoctors,
		&s.FirstAdmission, &s.LastAdmission, &s.AvgAge, &s.AvgBilling, &s.AvgLengthOfStay,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// categoryStats runs the shared breakdown shape over one enumerated column.
// col is always one of our own column names, never caller input.
func (r *repoPG) categoryStats(ctx context.Context, col string, withAvgAge, withAvgStay bool) ([]CategoryStats, error) {
	q := fmt.Sprintf(`
		SELECT %[1]s,
		       COUNT(*),
		       ROUND(100.0 * COUNT(*) / SUM(COUNT(*)) OVER (), 2),
		       ROUND(AVG(billing_amount), 2),
		       ROUND(MIN(billing_amount), 2),
		       ROUND(MAX(billing_amount), 2),
		       ROUND(SUM(billing_amount), 2),
		       ROUND(AVG(age), 1),
		       ROUND(AVG(length_of_stay), 1)
		FROM patient_admissions
		WHERE %[1]s IS NOT NULL
		GROUP BY %[1]s
		ORDER BY COUNT(*) DESC, %[1]s`, col)

	rows, err := r.conn(ctx).Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryStats
	for rows.Next() {
		var cs CategoryStats
		var avgAge, avgStay *float64
		if err := rows.Scan(
			&cs.Group, &cs.AdmissionCount, &cs.PctOfTotal,
			&cs.AvgBilling, &cs.MinBilling, &cs.MaxBilling, &cs.TotalBilling,
			&avgAge, &avgStay,
		); err != nil {
			return nil, err
		}
		if withAvgAge {
			cs.AvgAge = avgAge
		}
		if withAvgStay {
			cs.AvgStayDays = avgStay
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

func (r *repoPG) ByGender(ctx context.Context) ([]CategoryStats, error) {
	return r.categoryStats(ctx, "gender", true, false)
}

func (r *repoPG) ByAdmissionType(ctx context.Context) ([]CategoryStats, error) {
	return r.categoryStats(ctx, "admission_type", false, true)
}

func (r *repoPG) ByInsuranceProvider(ctx context.Context) ([]CategoryStats, error) {
	return r.categoryStats(ctx, "insurance_provider", false, false)
}

func (r *repoPG) ByTestResults(ctx context.Context) ([]CategoryStats, error) {
	return r.categoryStats(ctx, "test_results", false, false)
}

func (r *repoPG) ByMedication(ctx context.Context) ([]CategoryStats, error) {
	return r.categoryStats(ctx, "medication", false, false)
}

func (r *repoPG) ByBloodType(ctx context.Context) ([]CategoryStats, error) {
	return r.categoryStats(ctx, "blood_type", false, false)
}

func (r *repoPG) ByAgeGroup(ctx context.Context) ([]CategoryStats, error) {
	out, err := r.categoryStats(ctx, "age_group", true, false)
	if err != nil {
		return nil, err
	}
	// Bucket order, not count order.
	sort.SliceStable(out, func(i, j int) bool {
		return admission.AgeGroupRank(out[i].Group) < admission.AgeGroupRank(out[j].Group)
	})
	return out, nil
}

func (r *repoPG) ByMedicalCondition(ctx context.Context) ([]ConditionStats, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT medical_condition,
		       COUNT(*),
		       ROUND(100.0 * COUNT(*) / SUM(COUNT(*)) OVER (), 2),
		       ROUND(AVG(billing_amount), 2),
		       ROUND(MIN(billing_amount), 2),
		       ROUND(MAX(billing_amount), 2),
		       ROUND(SUM(billing_amount), 2),
		       ROUND(AVG(length_of_stay), 1)
		FROM patient_admissions
		WHERE medical_condition IS NOT NULL
		GROUP BY medical_condition
		ORDER BY COUNT(*) DESC, medical_condition`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConditionStats
	for rows.Next() {
		var cs ConditionStats
		if err := rows.Scan(
			&cs.MedicalCondition, &cs.CaseCount, &cs.PctOfTotal,
			&cs.AvgCost, &cs.MinCost, &cs.MaxCost, &cs.TotalCost, &cs.AvgStayDays,
		); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

func (r *repoPG) AdmissionsByMonth(ctx context.Context) ([]MonthlyAdmissions, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT to_char(date_trunc('month', date_of_admission), 'YYYY-MM'),
		       COUNT(*),
		       ROUND(SUM(billing_amount), 2),
		       ROUND(AVG(billing_amount), 2)
		FROM patient_admissions
		GROUP BY date_trunc('month', date_of_admission)
		ORDER BY date_trunc('month', date_of_admission)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyAdmissions
	for rows.Next() {
		var m MonthlyAdmissions
		if err := rows.Scan(&m.Month, &m.AdmissionCount, &m.TotalBilling, &m.AvgBilling); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repoPG) RevenueByMonth(ctx context.Context) ([]MonthlyRevenue, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT to_char(date_trunc('month', date_of_admission), 'YYYY-MM'),
		       ROUND(SUM(billing_amount), 2),
		       ROUND(AVG(billing_amount), 2),
		       ROUND(AVG(length_of_stay), 1)
		FROM patient_admissions
		GROUP BY date_trunc('month', date_of_admission)
		ORDER BY date_trunc('month', date_of_admission)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyRevenue
	for rows.Next() {
		var m MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.TotalBilling, &m.AvgBilling, &m.AvgStayDays); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repoPG) AdmissionsByQuarter(ctx context.Context) ([]QuarterlyAdmissions, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT to_char(date_trunc('quarter', date_of_admission), 'YYYY-"Q"Q'),
		       COUNT(*),
		       ROUND(SUM(billing_amount), 2)
		FROM patient_admissions
		GROUP BY date_trunc('quarter', date_of_admission)
		ORDER BY date_trunc('quarter', date_of_admission)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QuarterlyAdmissions
	for rows.Next() {
		var q QuarterlyAdmissions
		if err := rows.Scan(&q.Quarter, &q.AdmissionCount, &q.TotalBilling); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *repoPG) AdmissionsByDayOfWeek(ctx context.Context) ([]WeekdayAdmissions, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT to_char(date_of_admission, 'FMDay'),
		       COUNT(*),
		       ROUND(100.0 * COUNT(*) / SUM(COUNT(*)) OVER (), 2),
		       ROUND(AVG(billing_amount), 2)
		FROM patient_admissions
		GROUP BY to_char(date_of_admission, 'FMDay'), EXTRACT(ISODOW FROM date_of_admission)
		ORDER BY EXTRACT(ISODOW FROM date_of_admission)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WeekdayAdmissions
	for rows.Next() {
		var w WeekdayAdmissions
		if err := rows.Scan(&w.Weekday, &w.AdmissionCount, &w.PctOfTotal, &w.AvgBilling); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *repoPG) AdmissionsByYear(ctx context.Context) ([]YearlyAdmissions, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT EXTRACT(YEAR FROM date_of_admission)::int,
		       COUNT(*),
		       COUNT(DISTINCT hospital),
		       ROUND(SUM(billing_amount), 2),
		       ROUND(AVG(billing_amount), 2)
		FROM patient_admissions
		GROUP BY EXTRACT(YEAR FROM date_of_admission)
		ORDER BY EXTRACT(YEAR FROM date_of_admission)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []YearlyAdmissions
	for rows.Next() {
		var y YearlyAdmissions
		if err := rows.Scan(&y.Year, &y.AdmissionCount, &y.UniqueHospitals, &y.TotalBilling, &y.AvgBilling); err != nil {
			return nil, err
		}
		out = append(out, y)
	}
	return out, rows.Err()
}

func (r *repoPG) YearOverYearGrowth(ctx context.Context) ([]YearOverYear, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		WITH yearly AS (
			SELECT EXTRACT(YEAR FROM date_of_admission)::int AS year, COUNT(*) AS cnt
			FROM patient_admissions
			GROUP BY 1
		)
		SELECT year, cnt,
		       LAG(cnt) OVER w,
		       ROUND(100.0 * (cnt - LAG(cnt) OVER w) / LAG(cnt) OVER w, 2)
		FROM yearly
		WINDOW w AS (ORDER BY year)
		ORDER BY year`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []YearOverYear
	for rows.Next() {
		var y YearOverYear
		if err := rows.Scan(&y.Year, &y.AdmissionCount, &y.PrevCount, &y.GrowthPct); err != nil {
			return nil, err
		}
		out = append(out, y)
	}
	return out, rows.Err()
}

func (r *repoPG) CumulativeAdmissionsByMonth(ctx context.Context) ([]CumulativeMonthly, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT to_char(date_trunc('month', date_of_admission), 'YYYY-MM'),
		       COUNT(*),
		       SUM(COUNT(*)) OVER (ORDER BY date_trunc('month', date_of_admission))::bigint
		FROM patient_admissions
		GROUP BY date_trunc('month', date_of_admission)
		ORDER BY date_trunc('month', date_of_admission)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CumulativeMonthly
	for rows.Next() {
		var c CumulativeMonthly
		if err := rows.Scan(&c.Month, &c.AdmissionCount, &c.CumulativeCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repoPG) ConditionByAdmissionType(ctx context.Context) ([]ConditionTypeCross, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT medical_condition, admission_type, COUNT(*),
		       ROUND(100.0 * COUNT(*) / SUM(COUNT(*)) OVER (PARTITION BY medical_condition), 2)
		FROM patient_admissions
		WHERE medical_condition IS NOT NULL AND admission_type IS NOT NULL
		GROUP BY medical_condition, admission_type
		ORDER BY medical_condition, COUNT(*) DESC, admission_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConditionTypeCross
	for rows.Next() {
		var c ConditionTypeCross
		if err := rows.Scan(&c.MedicalCondition, &c.AdmissionType, &c.Count, &c.PctWithinCondition); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repoPG) ConditionByTestResults(ctx context.Context) ([]ConditionResultCross, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT medical_condition, test_results, COUNT(*),
		       ROUND(100.0 * COUNT(*) / SUM(COUNT(*)) OVER (PARTITION BY medical_condition), 2)
		FROM patient_admissions
		WHERE medical_condition IS NOT NULL AND test_results IS NOT NULL
		GROUP BY medical_condition, test_results
		ORDER BY medical_condition, COUNT(*) DESC, test_results`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConditionResultCross
	for rows.Next() {
		var c ConditionResultCross
		if err := rows.Scan(&c.MedicalCondition, &c.TestResults, &c.Count, &c.PctWithinCondition); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repoPG) ConditionGenderMeans(ctx context.Context) ([]ConditionGenderMean, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT medical_condition, gender,
		       ROUND(AVG(age), 1),
		       ROUND(AVG(billing_amount), 2),
		       ROUND(AVG(length_of_stay), 1)
		FROM patient_admissions
		WHERE medical_condition IS NOT NULL AND gender IS NOT NULL
		GROUP BY medical_condition, gender
		ORDER BY medical_condition, gender`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConditionGenderMean
	for rows.Next() {
		var c ConditionGenderMean
		if err := rows.Scan(&c.MedicalCondition, &c.Gender, &c.AvgAge, &c.AvgBilling, &c.AvgStayDays); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repoPG) AvgStayByCondition(ctx context.Context) ([]ConditionStay, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT medical_condition, COUNT(*),
		       ROUND(AVG(length_of_stay), 1),
		       MIN(length_of_stay),
		       MAX(length_of_stay)
		FROM patient_admissions
		WHERE medical_condition IS NOT NULL
		GROUP BY medical_condition
		ORDER BY ROUND(AVG(length_of_stay), 1) DESC NULLS LAST, medical_condition`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConditionStay
	for rows.Next() {
		var c ConditionStay
		if err := rows.Scan(&c.MedicalCondition, &c.CaseCount, &c.AvgStayDays, &c.MinStayDays, &c.MaxStayDays); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// HighBillingRecords returns full rows at or above the 90th percentile of
// billing. The percentile subquery yields NULL on an empty population, which
// matches nothing, so an empty table produces an empty set.
func (r *repoPG) HighBillingRecords(ctx context.Context) ([]*admission.Admission, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+admission.Cols+`
		FROM patient_admissions
		WHERE billing_amount >= (
			SELECT percentile_cont(0.9) WITHIN GROUP (ORDER BY billing_amount)
			FROM patient_admissions
			WHERE billing_amount IS NOT NULL
		)
		ORDER BY billing_amount DESC, id`)
	if err != nil {
		return nil, err
	}
	return admission.CollectRows(rows)
}

func (r *repoPG) TopExpensiveCases(ctx context.Context) ([]*admission.Admission, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+admission.Cols+`
		FROM patient_admissions
		WHERE billing_amount IS NOT NULL
		ORDER BY billing_amount DESC, id
		LIMIT 10`)
	if err != nil {
		return nil, err
	}
	return admission.CollectRows(rows)
}

func (r *repoPG) HospitalBillingRanking(ctx context.Context) ([]HospitalRank, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		WITH ranked AS (
			SELECT hospital,
			       COUNT(*) AS cnt,
			       ROUND(AVG(billing_amount), 2) AS avg_billing,
			       ROUND(SUM(billing_amount), 2) AS total_billing
			FROM patient_admissions
			WHERE hospital IS NOT NULL
			GROUP BY hospital
			HAVING COUNT(*) >= 5 AND AVG(billing_amount) IS NOT NULL
		)
		SELECT hospital, cnt, avg_billing, total_billing,
		       DENSE_RANK() OVER (ORDER BY avg_billing DESC)::int AS billing_rank
		FROM ranked
		ORDER BY billing_rank, hospital
		LIMIT 20`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HospitalRank
	for rows.Next() {
		var h HospitalRank
		if err := rows.Scan(&h.Hospital, &h.AdmissionCount, &h.AvgBilling, &h.TotalBilling, &h.BillingRank); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *repoPG) EmergencyVsElective(ctx context.Context) ([]TypeComparison, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT admission_type, COUNT(*),
		       ROUND(AVG(billing_amount), 2),
		       ROUND(AVG(length_of_stay), 1),
		       ROUND(AVG(age), 1),
		       ROUND(SUM(billing_amount), 2)
		FROM patient_admissions
		WHERE admission_type IN ('Emergency', 'Elective')
		GROUP BY admission_type
		ORDER BY admission_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TypeComparison
	for rows.Next() {
		var t TypeComparison
		if err := rows.Scan(&t.AdmissionType, &t.AdmissionCount, &t.AvgBilling, &t.AvgStayDays, &t.AvgAge, &t.TotalBilling); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repoPG) DataQuality(ctx context.Context) (*quality.Report, error) {
	return r.quality.Counts(ctx)
}

func (r *repoPG) MonthlyKPIs(ctx context.Context) ([]MonthlyKPI, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT month, admission_count, unique_patients, total_billing, avg_billing, avg_stay_days
		FROM monthly_kpis
		ORDER BY month`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyKPI
	for rows.Next() {
		var k MonthlyKPI
		if err := rows.Scan(&k.Month, &k.AdmissionCount, &k.UniquePatients, &k.TotalBilling, &k.AvgBilling, &k.AvgStayDays); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *repoPG) ConditionSummaries(ctx context.Context) ([]ConditionSummary, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT medical_condition, case_count, avg_cost, min_cost, max_cost,
		       total_cost, avg_stay_days, abnormal_count
		FROM condition_summary
		ORDER BY case_count DESC, medical_condition`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConditionSummary
	for rows.Next() {
		var c ConditionSummary
		if err := rows.Scan(
			&c.MedicalCondition, &c.CaseCount, &c.AvgCost, &c.MinCost, &c.MaxCost,
			&c.TotalCost, &c.AvgStayDays, &c.AbnormalCount,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
