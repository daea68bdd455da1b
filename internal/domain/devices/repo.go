package devices

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Add(ctx context.Context, email, name string, powerUsage float64) (int64, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO devices (email, device_name, power_usage)
		VALUES ($1, $2, $3)
		RETURNING id
	`, email, name, powerUsage)

	var id int64
	return id, row.Scan(&id)
}

func (r *Repo) ListByHousehold(ctx context.Context, email string) ([]Device, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, device_name, power_usage, created_at
		FROM devices WHERE email = $1 ORDER BY id
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Device
	for rows.Next() {
		var d Device
		if err := rows.Scan(&d.ID, &d.Email, &d.Name, &d.PowerUsage, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
