package quality

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/admitstats/admitstats/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// NULLs never fire a rule: a missing age is unknown, not out of range.
func (r *repoPG) Counts(ctx context.Context) (*Report, error) {
	var rep Report
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE billing_amount < 0),
			COUNT(*) FILTER (WHERE age < $1 OR age > $2),
			COUNT(*) FILTER (WHERE discharge_date < date_of_admission)
		FROM patient_admissions`, MinAge, MaxAge,
	).Scan(&rep.TotalRecords, &rep.NegativeBilling, &rep.AgeOutOfRange, &rep.DischargeBeforeAdmission)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
