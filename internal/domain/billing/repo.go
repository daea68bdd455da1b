package billing

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const billColumns = `id, email, month, year, units, amount, status, generated_at`

func scanBill(row pgx.Row) (*Bill, error) {
	var b Bill
	if err := row.Scan(&b.ID, &b.Email, &b.Month, &b.Year, &b.Units, &b.Amount, &b.Status, &b.GeneratedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repo) Find(ctx context.Context, email, month string, year int) (*Bill, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+billColumns+`
		FROM bills WHERE email = $1 AND month = $2 AND year = $3
	`, email, month, year)
	return scanBill(row)
}

// Insert creates the month's bill. ON CONFLICT turns a concurrent
// double-insert into a figure refresh, so the (email, month, year)
// identity can never be duplicated.
func (r *Repo) Insert(ctx context.Context, b Bill) (int64, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO bills (email, month, year, units, amount, status, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email, month, year) DO UPDATE SET
		  units = EXCLUDED.units,
		  amount = EXCLUDED.amount,
		  generated_at = EXCLUDED.generated_at
		RETURNING id
	`, b.Email, b.Month, b.Year, b.Units, b.Amount, b.Status, b.GeneratedAt)

	var id int64
	return id, row.Scan(&id)
}

// UpdateFigures refreshes a replayed month. Status stays untouched.
func (r *Repo) UpdateFigures(ctx context.Context, email, month string, year int, units, amount float64, generatedAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE bills SET units = $4, amount = $5, generated_at = $6
		WHERE email = $1 AND month = $2 AND year = $3
	`, email, month, year, units, amount, generatedAt)
	return err
}

// MarkPaid flips an unpaid bill to paid. false when there was nothing
// unpaid for that month.
func (r *Repo) MarkPaid(ctx context.Context, email, month string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE bills SET status = $3
		WHERE email = $1 AND month = $2 AND status = $4
	`, email, month, StatusPaid, StatusUnpaid)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// FindUnpaidExcluding returns any one unpaid bill from a month other
// than the given one.
func (r *Repo) FindUnpaidExcluding(ctx context.Context, email, month string) (*Bill, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+billColumns+`
		FROM bills
		WHERE email = $1 AND status = $2 AND month <> $3
		ORDER BY generated_at
		LIMIT 1
	`, email, StatusUnpaid, month)
	return scanBill(row)
}

// ListByHousehold returns the billing history, newest first.
func (r *Repo) ListByHousehold(ctx context.Context, email string) ([]Bill, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+billColumns+`
		FROM bills WHERE email = $1
		ORDER BY generated_at DESC
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bill
	for rows.Next() {
		var b Bill
		if err := rows.Scan(&b.ID, &b.Email, &b.Month, &b.Year, &b.Units, &b.Amount, &b.Status, &b.GeneratedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
