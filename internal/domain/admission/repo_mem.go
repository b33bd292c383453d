package admission

import (
	"context"
	"sort"
)

// repoMem serves the Repository contract from an in-memory Store. It backs
// the CLI's fixture mode and the unit tests, which run without Postgres.
type repoMem struct {
	store *Store
}

func NewRepoMem(store *Store) Repository {
	return &repoMem{store: store}
}

func (r *repoMem) Insert(ctx context.Context, a *Admission) error {
	r.store.Add(a)
	return nil
}

func (r *repoMem) BulkInsert(ctx context.Context, rows []*Admission) (int64, error) {
	r.store.Add(rows...)
	return int64(len(rows)), nil
}

func (r *repoMem) GetByID(ctx context.Context, id int64) (*Admission, error) {
	for _, a := range r.store.All() {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrNotFound
}

func (r *repoMem) List(ctx context.Context, limit, offset int) ([]*Admission, int, error) {
	all := r.store.All()
	sort.Slice(all, func(i, j int) bool {
		if !all[i].DateOfAdmission.Equal(all[j].DateOfAdmission) {
			return all[i].DateOfAdmission.Before(all[j].DateOfAdmission)
		}
		return all[i].ID < all[j].ID
	})
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *repoMem) Count(ctx context.Context) (int64, error) {
	return int64(r.store.Len()), nil
}
