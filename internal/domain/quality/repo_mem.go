package quality

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

func (r *repoMem) Counts(ctx context.Context) (*Report, error) {
	rep := &Report{}
	for _, a := range r.store.All() {
		rep.TotalRecords++
		if a.BillingAmount != nil && *a.BillingAmount < 0 {
			rep.NegativeBilling++
		}
		if a.Age != nil && (*a.Age < MinAge || *a.Age > MaxAge) {
			rep.AgeOutOfRange++
		}
		if a.DischargeDate != nil && a.DischargeDate.Before(a.DateOfAdmission) {
			rep.DischargeBeforeAdmission++
		}
	}
	return rep, nil
}
