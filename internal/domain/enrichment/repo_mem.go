package enrichment

import (
	"context"

	"github.com/admitstats/admitstats/internal/domain/admission"
)

type repoMem struct {
	store *admission.Store
}

func NewRepoMem(store *admission.Store) Repository {
	return &repoMem{store: store}
}

func (r *repoMem) NormalizeNames(ctx context.Context) (int64, error) {
	var changed int64
	r.store.Mutate(func(rows []*admission.Admission) {
		for _, a := range rows {
			if a.Name == nil {
				continue
			}
			norm := admission.NormalizeName(*a.Name)
			if norm != *a.Name {
				a.Name = &norm
				changed++
			}
		}
	})
	return changed, nil
}

func (r *repoMem) Enrich(ctx context.Context) (*Result, error) {
	res := &Result{}
	r.store.Mutate(func(rows []*admission.Admission) {
		for _, a := range rows {
			res.RowsEnriched++

			if a.DischargeDate != nil {
				los := admission.LengthOfStayDays(a.DateOfAdmission, *a.DischargeDate)
				a.LengthOfStay = &los
			} else {
				a.LengthOfStay = nil
			}

			a.AgeGroup = nil
			if a.Age != nil {
				if group, ok := admission.AgeGroupFor(*a.Age); ok {
					a.AgeGroup = &group
				} else {
					res.UnbucketedAges++
				}
			}
		}
	})
	return res, nil
}
