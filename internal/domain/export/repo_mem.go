package export

import (
	"context"
	"sort"

	"github.com/admitstats/admitstats/internal/domain/admission"
)

type repoMem struct {
	store *admission.Store
}

func NewRepoMem(store *admission.Store) Repository {
	return &repoMem{store: store}
}

func (r *repoMem) Rows(ctx context.Context) ([]Row, error) {
	adms := r.store.All()
	sort.Slice(adms, func(i, j int) bool {
		if !adms[i].DateOfAdmission.Equal(adms[j].DateOfAdmission) {
			return adms[i].DateOfAdmission.Before(adms[j].DateOfAdmission)
		}
		return adms[i].ID < adms[j].ID
	})

	out := make([]Row, 0, len(adms))
	for _, a := range adms {
		out = append(out, rowFromAdmission(a))
	}
	return out, nil
}
