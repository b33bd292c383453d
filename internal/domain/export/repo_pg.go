package export

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/admitstats/admitstats/internal/domain/admission"
	"github.com/admitstats/admitstats/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) Rows(ctx context.Context) ([]Row, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+admission.Cols+`
		FROM patient_admissions
		ORDER BY date_of_admission, id`)
	if err != nil {
		return nil, fmt.Errorf("query export rows: %w", err)
	}
	adms, err := admission.CollectRows(rows)
	if err != nil {
		return nil, err
	}

	out := make([]Row, 0, len(adms))
	for _, a := range adms {
		out = append(out, rowFromAdmission(a))
	}
	return out, nil
}
