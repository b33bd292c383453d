package enrichment

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) NormalizeNames(ctx context.Context) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient_admissions
		SET name = initcap(name)
		WHERE name IS NOT NULL AND name <> initcap(name)`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// The CASE bounds must mirror admission.AgeGroupFor.
func (r *repoPG) Enrich(ctx context.Context) (*Result, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient_admissions
		SET length_of_stay = discharge_date - date_of_admission,
		    age_group = CASE
		        WHEN age IS NULL OR age < 0 THEN NULL
		        WHEN age < 18 THEN $1
		        WHEN age < 36 THEN $2
		        WHEN age < 56 THEN $3
		        WHEN age < 71 THEN $4
		        ELSE $5
		    END`,
		admission.AgeGroupMinor, admission.AgeGroupYoungAdult, admission.AgeGroupMiddleAge,
		admission.AgeGroupSenior, admission.AgeGroupElderly)
	if err != nil {
		return nil, err
	}

	res := &Result{RowsEnriched: tag.RowsAffected()}
	err = r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patient_admissions WHERE age < 0`,
	).Scan(&res.UnbucketedAges)
	if err != nil {
		return nil, err
	}
	return res, nil
}
