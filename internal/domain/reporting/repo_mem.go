package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/admitstats/admitstats/internal/domain/admission"
	"github.com/admitstats/admitstats/internal/domain/quality"
)

// repoMem answers the catalog with explicit groupby-reduce over the
// in-memory store. It mirrors the Postgres repository row for row so the
// catalog tests run against fixtures without a database.
type repoMem struct {
	store   *admission.Store
	quality quality.Repository
}

func NewRepoMem(store *admission.Store) Repository {
	return &repoMem{store: store, quality: quality.NewRepoMem(store)}
}

// groupAgg accumulates the per-group pieces every breakdown draws from.
type groupAgg struct {
	count   int64
	billSum float64
	billCnt int64
	billMin float64
	billMax float64
	ageSum  float64
	ageCnt  int64
	staySum float64
	stayCnt int64
	stayMin int
	stayMax int
}

func (g *groupAgg) add(a *admission.Admission) {
	g.count++
	if a.BillingAmount != nil {
		v := *a.BillingAmount
		if g.billCnt == 0 || v < g.billMin {
			g.billMin = v
		}
		if g.billCnt == 0 || v > g.billMax {
			g.billMax = v
		}
		g.billSum += v
		g.billCnt++
	}
	if a.Age != nil {
		g.ageSum += float64(*a.Age)
		g.ageCnt++
	}
	if a.LengthOfStay != nil {
		d := *a.LengthOfStay
		if g.stayCnt == 0 || d < g.stayMin {
			g.stayMin = d
		}
		if g.stayCnt == 0 || d > g.stayMax {
			g.stayMax = d
		}
		g.staySum += float64(d)
		g.stayCnt++
	}
}

func groupBy(rows []*admission.Admission, key func(*admission.Admission) (string, bool)) map[string]*groupAgg {
	groups := make(map[string]*groupAgg)
	for _, a := range rows {
		k, ok := key(a)
		if !ok {
			continue
		}
		g := groups[k]
		if g == nil {
			g = &groupAgg{}
			groups[k] = g
		}
		g.add(a)
	}
	return groups
}

func strField(field func(*admission.Admission) *string) func(*admission.Admission) (string, bool) {
	return func(a *admission.Admission) (string, bool) {
		v := field(a)
		if v == nil {
			return "", false
		}
		return *v, true
	}
}

func (r *repoMem) DescriptiveSummary(ctx context.Context) (*Summary, error) {
	rows := r.store.All()
	s := &Summary{TotalRecords: int64(len(rows))}

	patients := make(map[string]struct{})
	hospitals := make(map[string]struct{})
	doctors := make(map[string]struct{})
	var agg groupAgg
	for _, a := range rows {
		if a.Name != nil {
			patients[*a.Name] = struct{}{}
		}
		if a.Hospital != nil {
			hospitals[*a.Hospital] = struct{}{}
		}
		if a.Doctor != nil {
			doctors[*a.Doctor] = struct{}{}
		}
		if s.FirstAdmission == nil || a.DateOfAdmission.Before(*s.FirstAdmission) {
			d := a.DateOfAdmission
			s.FirstAdmission = &d
		}
		if s.LastAdmission == nil || a.DateOfAdmission.After(*s.LastAdmission) {
			d := a.DateOfAdmission
			s.LastAdmission = &d
		}
		agg.add(a)
	}
	s.UniquePatients = int64(len(patients))
	s.UniqueHospitals = int64(len(hospitals))
	s.UniqueDoctors = int64(len(doctors))
	s.AvgAge = meanPtr(agg.ageSum, agg.ageCnt, 1)
	s.AvgBilling = meanPtr(agg.billSum, agg.billCnt, 2)
	s.AvgLengthOfStay = meanPtr(agg.staySum, agg.stayCnt, 1)
	return s, nil
}

func (r *repoMem) categoryBreakdown(field func(*admission.Admission) *string, withAvgAge, withAvgStay bool) []CategoryStats {
	groups := groupBy(r.store.All(), strField(field))

	var total int64
	for _, g := range groups {
		total += g.count
	}

	var out []CategoryStats
	for k, g := range groups {
		cs := CategoryStats{
			Group:          k,
			AdmissionCount: g.count,
			PctOfTotal:     pct(g.count, total),
			AvgBilling:     meanPtr(g.billSum, g.billCnt, 2),
		}
		if g.billCnt > 0 {
			cs.MinBilling = roundPtr(g.billMin, 2)
			cs.MaxBilling = roundPtr(g.billMax, 2)
			cs.TotalBilling = roundPtr(g.billSum, 2)
		}
		if withAvgAge {
			cs.AvgAge = meanPtr(g.ageSum, g.ageCnt, 1)
		}
		if withAvgStay {
			cs.AvgStayDays = meanPtr(g.staySum, g.stayCnt, 1)
		}
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AdmissionCount != out[j].AdmissionCount {
			return out[i].AdmissionCount > out[j].AdmissionCount
		}
		return out[i].Group < out[j].Group
	})
	return out
}

func (r *repoMem) ByGender(ctx context.Context) ([]CategoryStats, error) {
	return r.categoryBreakdown(func(a *admission.Admission) *string { return a.Gender }, true, false), nil
}

func (r *repoMem) ByAdmissionType(ctx context.Context) ([]CategoryStats, error) {
	return r.categoryBreakdown(func(a *admission.Admission) *string { return a.AdmissionType }, false, true), nil
}

func (r *repoMem) ByInsuranceProvider(ctx context.Context) ([]CategoryStats, error) {
	return r.categoryBreakdown(func(a *admission.Admission) *string { return a.InsuranceProvider }, false, false), nil
}

func (r *repoMem) ByTestResults(ctx context.Context) ([]CategoryStats, error) {
	return r.categoryBreakdown(func(a *admission.Admission) *string { return a.TestResults }, false, false), nil
}

func (r *repoMem) ByMedication(ctx context.Context) ([]CategoryStats, error) {
	return r.categoryBreakdown(func(a *admission.Admission) *string { return a.Medication }, false, false), nil
}

func (r *repoMem) ByBloodType(ctx context.Context) ([]CategoryStats, error) {
	return r.categoryBreakdown(func(a *admission.Admission) *string { return a.BloodType }, false, false), nil
}

func (r *repoMem) ByAgeGroup(ctx context.Context) ([]CategoryStats, error) {
	out := r.categoryBreakdown(func(a *admission.Admission) *string { return a.AgeGroup }, true, false)
	sort.SliceStable(out, func(i, j int) bool {
		return admission.AgeGroupRank(out[i].Group) < admission.AgeGroupRank(out[j].Group)
	})
	return out, nil
}

func (r *repoMem) ByMedicalCondition(ctx context.Context) ([]ConditionStats, error) {
	groups := groupBy(r.store.All(), strField(func(a *admission.Admission) *string { return a.MedicalCondition }))

	var total int64
	for _, g := range groups {
		total += g.count
	}

	var out []ConditionStats
	for k, g := range groups {
		cs := ConditionStats{
			MedicalCondition: k,
			CaseCount:        g.count,
			PctOfTotal:       pct(g.count, total),
			AvgCost:          meanPtr(g.billSum, g.billCnt, 2),
			AvgStayDays:      meanPtr(g.staySum, g.stayCnt, 1),
		}
		if g.billCnt > 0 {
			cs.MinCost = roundPtr(g.billMin, 2)
			cs.MaxCost = roundPtr(g.billMax, 2)
			cs.TotalCost = roundPtr(g.billSum, 2)
		}
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CaseCount != out[j].CaseCount {
			return out[i].CaseCount > out[j].CaseCount
		}
		return out[i].MedicalCondition < out[j].MedicalCondition
	})
	return out, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthlyGroups aggregates rows per calendar month, keys sorted
// chronologically.
func (r *repoMem) monthlyGroups() ([]time.Time, map[time.Time]*groupAgg) {
	groups := make(map[time.Time]*groupAgg)
	for _, a := range r.store.All() {
		k := monthStart(a.DateOfAdmission)
		g := groups[k]
		if g == nil {
			g = &groupAgg{}
			groups[k] = g
		}
		g.add(a)
	}
	keys := make([]time.Time, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys, groups
}

func (r *repoMem) AdmissionsByMonth(ctx context.Context) ([]MonthlyAdmissions, error) {
	keys, groups := r.monthlyGroups()
	var out []MonthlyAdmissions
	for _, k := range keys {
		g := groups[k]
		m := MonthlyAdmissions{
			Month:          k.Format("2006-01"),
			AdmissionCount: g.count,
			AvgBilling:     meanPtr(g.billSum, g.billCnt, 2),
		}
		if g.billCnt > 0 {
			m.TotalBilling = roundPtr(g.billSum, 2)
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *repoMem) RevenueByMonth(ctx context.Context) ([]MonthlyRevenue, error) {
	keys, groups := r.monthlyGroups()
	var out []MonthlyRevenue
	for _, k := range keys {
		g := groups[k]
		m := MonthlyRevenue{
			Month:       k.Format("2006-01"),
			AvgBilling:  meanPtr(g.billSum, g.billCnt, 2),
			AvgStayDays: meanPtr(g.staySum, g.stayCnt, 1),
		}
		if g.billCnt > 0 {
			m.TotalBilling = roundPtr(g.billSum, 2)
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *repoMem) AdmissionsByQuarter(ctx context.Context) ([]QuarterlyAdmissions, error) {
	groups := make(map[time.Time]*groupAgg)
	for _, a := range r.store.All() {
		y := a.DateOfAdmission.Year()
		q := (int(a.DateOfAdmission.Month()) - 1) / 3
		k := time.Date(y, time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
		g := groups[k]
		if g == nil {
			g = &groupAgg{}
			groups[k] = g
		}
		g.add(a)
	}
	keys := make([]time.Time, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	var out []QuarterlyAdmissions
	for _, k := range keys {
		g := groups[k]
		qa := QuarterlyAdmissions{
			Quarter:        fmt.Sprintf("%d-Q%d", k.Year(), (int(k.Month())-1)/3+1),
			AdmissionCount: g.count,
		}
		if g.billCnt > 0 {
			qa.TotalBilling = roundPtr(g.billSum, 2)
		}
		out = append(out, qa)
	}
	return out, nil
}

func (r *repoMem) AdmissionsByDayOfWeek(ctx context.Context) ([]WeekdayAdmissions, error) {
	// Index 0 = Monday, matching ISO weekday order.
	var days [7]*groupAgg
	var total int64
	for _, a := range r.store.All() {
		idx := (int(a.DateOfAdmission.Weekday()) + 6) % 7
		if days[idx] == nil {
			days[idx] = &groupAgg{}
		}
		days[idx].add(a)
		total++
	}

	var out []WeekdayAdmissions
	for idx, g := range days {
		if g == nil {
			continue
		}
		wd := time.Weekday((idx + 1) % 7)
		out = append(out, WeekdayAdmissions{
			Weekday:        wd.String(),
			AdmissionCount: g.count,
			PctOfTotal:     pct(g.count, total),
			AvgBilling:     meanPtr(g.billSum, g.billCnt, 2),
		})
	}
	return out, nil
}

func (r *repoMem) AdmissionsByYear(ctx context.Context) ([]YearlyAdmissions, error) {
	groups := make(map[int]*groupAgg)
	hospitals := make(map[int]map[string]struct{})
	for _, a := range r.store.All() {
		y := a.DateOfAdmission.Year()
		g := groups[y]
		if g == nil {
			g = &groupAgg{}
			groups[y] = g
			hospitals[y] = make(map[string]struct{})
		}
		g.add(a)
		if a.Hospital != nil {
			hospitals[y][*a.Hospital] = struct{}{}
		}
	}
	years := make([]int, 0, len(groups))
	for y := range groups {
		years = append(years, y)
	}
	sort.Ints(years)

	var out []YearlyAdmissions
	for _, y := range years {
		g := groups[y]
		ya := YearlyAdmissions{
			Year:            y,
			AdmissionCount:  g.count,
			UniqueHospitals: int64(len(hospitals[y])),
			AvgBilling:      meanPtr(g.billSum, g.billCnt, 2),
		}
		if g.billCnt > 0 {
			ya.TotalBilling = roundPtr(g.billSum, 2)
		}
		out = append(out, ya)
	}
	return out, nil
}

func (r *repoMem) YearOverYearGrowth(ctx context.Context) ([]YearOverYear, error) {
	counts := make(map[int]int64)
	for _, a := range r.store.All() {
		counts[a.DateOfAdmission.Year()]++
	}
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	var out []YearOverYear
	for i, y := range years {
		yy := YearOverYear{Year: y, AdmissionCount: counts[y]}
		if i > 0 {
			prev := counts[years[i-1]]
			yy.PrevCount = &prev
			yy.GrowthPct = roundPtr(100*float64(counts[y]-prev)/float64(prev), 2)
		}
		out = append(out, yy)
	}
	return out, nil
}

func (r *repoMem) CumulativeAdmissionsByMonth(ctx context.Context) ([]CumulativeMonthly, error) {
	keys, groups := r.monthlyGroups()
	var out []CumulativeMonthly
	var running int64
	for _, k := range keys {
		running += groups[k].count
		out = append(out, CumulativeMonthly{
			Month:           k.Format("2006-01"),
			AdmissionCount:  groups[k].count,
			CumulativeCount: running,
		})
	}
	return out, nil
}

type crossCell struct {
	condition string
	value     string
	count     int64
	pctWithin float64
}

// crossTab counts (condition, value) pairs and computes each pair's share
// within its condition partition.
func (r *repoMem) crossTab(value func(*admission.Admission) *string) []crossCell {
	counts := make(map[string]map[string]int64)
	totals := make(map[string]int64)
	for _, a := range r.store.All() {
		if a.MedicalCondition == nil {
			continue
		}
		v := value(a)
		if v == nil {
			continue
		}
		c := *a.MedicalCondition
		if counts[c] == nil {
			counts[c] = make(map[string]int64)
		}
		counts[c][*v]++
		totals[c]++
	}

	var out []crossCell
	for c, values := range counts {
		for v, n := range values {
			out = append(out, crossCell{
				condition: c,
				value:     v,
				count:     n,
				pctWithin: pct(n, totals[c]),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].condition != out[j].condition {
			return out[i].condition < out[j].condition
		}
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].value < out[j].value
	})
	return out
}

func (r *repoMem) ConditionByAdmissionType(ctx context.Context) ([]ConditionTypeCross, error) {
	var out []ConditionTypeCross
	for _, c := range r.crossTab(func(a *admission.Admission) *string { return a.AdmissionType }) {
		out = append(out, ConditionTypeCross{
			MedicalCondition:   c.condition,
			AdmissionType:      c.value,
			Count:              c.count,
			PctWithinCondition: c.pctWithin,
		})
	}
	return out, nil
}

func (r *repoMem) ConditionByTestResults(ctx context.Context) ([]ConditionResultCross, error) {
	var out []ConditionResultCross
	for _, c := range r.crossTab(func(a *admission.Admission) *string { return a.TestResults }) {
		out = append(out, ConditionResultCross{
			MedicalCondition:   c.condition,
			TestResults:        c.value,
			Count:              c.count,
			PctWithinCondition: c.pctWithin,
		})
	}
	return out, nil
}

func (r *repoMem) ConditionGenderMeans(ctx context.Context) ([]ConditionGenderMean, error) {
	groups := make(map[string]map[string]*groupAgg)
	for _, a := range r.store.All() {
		if a.MedicalCondition == nil || a.Gender == nil {
			continue
		}
		c, sex := *a.MedicalCondition, *a.Gender
		if groups[c] == nil {
			groups[c] = make(map[string]*groupAgg)
		}
		g := groups[c][sex]
		if g == nil {
			g = &groupAgg{}
			groups[c][sex] = g
		}
		g.add(a)
	}

	var out []ConditionGenderMean
	for c, byGender := range groups {
		for sex, g := range byGender {
			out = append(out, ConditionGenderMean{
				MedicalCondition: c,
				Gender:           sex,
				AvgAge:           meanPtr(g.ageSum, g.ageCnt, 1),
				AvgBilling:       meanPtr(g.billSum, g.billCnt, 2),
				AvgStayDays:      meanPtr(g.staySum, g.stayCnt, 1),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MedicalCondition != out[j].MedicalCondition {
			return out[i].MedicalCondition < out[j].MedicalCondition
		}
		return out[i].Gender < out[j].Gender
	})
	return out, nil
}

func (r *repoMem) AvgStayByCondition(ctx context.Context) ([]ConditionStay, error) {
	groups := groupBy(r.store.All(), strField(func(a *admission.Admission) *string { return a.MedicalCondition }))

	var out []ConditionStay
	for k, g := range groups {
		cs := ConditionStay{
			MedicalCondition: k,
			CaseCount:        g.count,
			AvgStayDays:      meanPtr(g.staySum, g.stayCnt, 1),
		}
		if g.stayCnt > 0 {
			lo, hi := g.stayMin, g.stayMax
			cs.MinStayDays = &lo
			cs.MaxStayDays = &hi
		}
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].AvgStayDays, out[j].AvgStayDays
		switch {
		case a == nil && b == nil:
			return out[i].MedicalCondition < out[j].MedicalCondition
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a > *b
		}
		return out[i].MedicalCondition < out[j].MedicalCondition
	})
	return out, nil
}

func (r *repoMem) billedRows() []*admission.Admission {
	var rows []*admission.Admission
	for _, a := range r.store.All() {
		if a.BillingAmount != nil {
			rows = append(rows, a)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if *rows[i].BillingAmount != *rows[j].BillingAmount {
			return *rows[i].BillingAmount > *rows[j].BillingAmount
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

func (r *repoMem) HighBillingRecords(ctx context.Context) ([]*admission.Admission, error) {
	rows := r.billedRows()
	if len(rows) == 0 {
		return nil, nil
	}

	billings := make([]float64, len(rows))
	for i, a := range rows {
		billings[i] = *a.BillingAmount
	}
	sort.Float64s(billings)
	threshold := percentileLinear(billings, 0.9)

	var out []*admission.Admission
	for _, a := range rows {
		if *a.BillingAmount >= threshold {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *repoMem) TopExpensiveCases(ctx context.Context) ([]*admission.Admission, error) {
	rows := r.billedRows()
	if len(rows) > 10 {
		rows = rows[:10]
	}
	return rows, nil
}

const (
	rankingMinAdmissions = 5
	rankingMaxRows       = 20
)

func (r *repoMem) HospitalBillingRanking(ctx context.Context) ([]HospitalRank, error) {
	groups := groupBy(r.store.All(), strField(func(a *admission.Admission) *string { return a.Hospital }))

	var out []HospitalRank
	for hosp, g := range groups {
		if g.count < rankingMinAdmissions || g.billCnt == 0 {
			continue
		}
		out = append(out, HospitalRank{
			Hospital:       hosp,
			AdmissionCount: g.count,
			AvgBilling:     round2(g.billSum / float64(g.billCnt)),
			TotalBilling:   round2(g.billSum),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgBilling != out[j].AvgBilling {
			return out[i].AvgBilling > out[j].AvgBilling
		}
		return out[i].Hospital < out[j].Hospital
	})

	// Dense ranks over the rounded means: ties share, no gaps.
	means := make([]float64, len(out))
	for i := range out {
		means[i] = out[i].AvgBilling
	}
	for i, rank := range denseRanks(means) {
		out[i].BillingRank = rank
	}

	if len(out) > rankingMaxRows {
		out = out[:rankingMaxRows]
	}
	return out, nil
}

func (r *repoMem) EmergencyVsElective(ctx context.Context) ([]TypeComparison, error) {
	groups := groupBy(r.store.All(), func(a *admission.Admission) (string, bool) {
		if a.AdmissionType == nil {
			return "", false
		}
		if *a.AdmissionType != "Emergency" && *a.AdmissionType != "Elective" {
			return "", false
		}
		return *a.AdmissionType, true
	})

	var out []TypeComparison
	for k, g := range groups {
		tc := TypeComparison{
			AdmissionType:  k,
			AdmissionCount: g.count,
			AvgBilling:     meanPtr(g.billSum, g.billCnt, 2),
			AvgStayDays:    meanPtr(g.staySum, g.stayCnt, 1),
			AvgAge:         meanPtr(g.ageSum, g.ageCnt, 1),
		}
		if g.billCnt > 0 {
			tc.TotalBilling = roundPtr(g.billSum, 2)
		}
		out = append(out, tc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AdmissionType < out[j].AdmissionType })
	return out, nil
}

func (r *repoMem) DataQuality(ctx context.Context) (*quality.Report, error) {
	return r.quality.Counts(ctx)
}

func (r *repoMem) MonthlyKPIs(ctx context.Context) ([]MonthlyKPI, error) {
	groups := make(map[time.Time]*groupAgg)
	patients := make(map[time.Time]map[string]struct{})
	for _, a := range r.store.All() {
		k := monthStart(a.DateOfAdmission)
		g := groups[k]
		if g == nil {
			g = &groupAgg{}
			groups[k] = g
			patients[k] = make(map[string]struct{})
		}
		g.add(a)
		if a.Name != nil {
			patients[k][*a.Name] = struct{}{}
		}
	}
	keys := make([]time.Time, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	var out []MonthlyKPI
	for _, k := range keys {
		g := groups[k]
		kpi := MonthlyKPI{
			Month:          k.Format("2006-01"),
			AdmissionCount: g.count,
			UniquePatients: int64(len(patients[k])),
			AvgBilling:     meanPtr(g.billSum, g.billCnt, 2),
			AvgStayDays:    meanPtr(g.staySum, g.stayCnt, 1),
		}
		if g.billCnt > 0 {
			kpi.TotalBilling = roundPtr(g.billSum, 2)
		}
		out = append(out, kpi)
	}
	return out, nil
}

func (r *repoMem) ConditionSummaries(ctx context.Context) ([]ConditionSummary, error) {
	groups := groupBy(r.store.All(), strField(func(a *admission.Admission) *string { return a.MedicalCondition }))
	abnormal := make(map[string]int64)
	for _, a := range r.store.All() {
		if a.MedicalCondition != nil && a.TestResults != nil && *a.TestResults == "Abnormal" {
			abnormal[*a.MedicalCondition]++
		}
	}

	var out []ConditionSummary
	for k, g := range groups {
		cs := ConditionSummary{
			MedicalCondition: k,
			CaseCount:        g.count,
			AvgCost:          meanPtr(g.billSum, g.billCnt, 2),
			AvgStayDays:      meanPtr(g.staySum, g.stayCnt, 1),
			AbnormalCount:    abnormal[k],
		}
		if g.billCnt > 0 {
			cs.MinCost = roundPtr(g.billMin, 2)
			cs.MaxCost = roundPtr(g.billMax, 2)
			cs.TotalCost = roundPtr(g.billSum, 2)
		}
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CaseCount != out[j].CaseCount {
			return out[i].CaseCount > out[j].CaseCount
		}
		return out[i].MedicalCondition < out[j].MedicalCondition
	})
	return out, nil
}
