package admission

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// Cols is the full select list for patient_admissions, shared with the
// reporting queries that return whole rows.
const Cols = `id, name, age, gender, blood_type, medical_condition, date_of_admission,
	doctor, hospital, insurance_provider, billing_amount, room_number,
	admission_type, discharge_date, medication, test_results,
	length_of_stay, age_group`

var copyCols = []string{
	"name", "age", "gender", "blood_type", "medical_condition", "date_of_admission",
	"doctor", "hospital", "insurance_provider", "billing_amount", "room_number",
	"admission_type", "discharge_date", "medication", "test_results",
}

func (r *repoPG) Insert(ctx context.Context, a *Admission) error {
	// id is an identity column, so the database assigns it.
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_admissions (
			name, age, gender, blood_type, medical_condition, date_of_admission,
			doctor, hospital, insurance_provider, billing_amount, room_number,
			admission_type, discharge_date, medication, test_results
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id`,
		a.Name, a.Age, a.Gender, a.BloodType, a.MedicalCondition, a.DateOfAdmission,
		a.Doctor, a.Hospital, a.InsuranceProvider, a.BillingAmount, a.RoomNumber,
		a.AdmissionType, a.DischargeDate, a.Medication, a.TestResults,
	).Scan(&a.ID)
}

func (r *repoPG) BulkInsert(ctx context.Context, rows []*Admission) (int64, error) {
	src := pgx.CopyFromSlice(len(rows), func(i int) ([]interface{}, error) {
		a := rows[i]
		return []interface{}{
			a.Name, a.Age, a.Gender, a.BloodType, a.MedicalCondition, a.DateOfAdmission,
			a.Doctor, a.Hospital, a.InsuranceProvider, a.BillingAmount, a.RoomNumber,
			a.AdmissionType, a.DischargeDate, a.Medication, a.TestResults,
		}, nil
	})
	return r.conn(ctx).CopyFrom(ctx, pgx.Identifier{"patient_admissions"}, copyCols, src)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Admission, error) {
	a, err := ScanRow(r.conn(ctx).QueryRow(ctx,
		`SELECT `+Cols+` FROM patient_admissions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Admission, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient_admissions`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+Cols+` FROM patient_admissions ORDER BY date_of_admission, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	adms, err := CollectRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return adms, total, nil
}

func (r *repoPG) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient_admissions`).Scan(&total)
	return total, err
}

// ScanRow scans one row selected with Cols.
func ScanRow(row pgx.Row) (*Admission, error) {
	var a Admission
	err := row.Scan(
		&a.ID, &a.Name, &a.Age, &a.Gender, &a.BloodType, &a.MedicalCondition, &a.DateOfAdmission,
		&a.Doctor, &a.Hospital, &a.InsuranceProvider, &a.BillingAmount, &a.RoomNumber,
		&a.AdmissionType, &a.DischargeDate, &a.Medication, &a.TestResults,
		&a.LengthOfStay, &a.AgeGroup,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CollectRows drains rows selected with Cols and closes them.
func CollectRows(rows pgx.Rows) ([]*Admission, error) {
	defer rows.Close()
	var adms []*Admission
	for rows.Next() {
		a, err := ScanRow(rows)
		if err != nil {
			return nil, err
		}
		adms = append(adms, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return adms, nil
}
