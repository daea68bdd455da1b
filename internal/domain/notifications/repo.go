package notifications

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Insert(ctx context.Context, n Notification) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (email, message, type, ts, month, year)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, n.Email, n.Message, n.Type, n.Timestamp, n.Month, n.Year)
	return err
}

func (r *Repo) ListByHousehold(ctx context.Context, email string) ([]Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, message, type, ts, month, year
		FROM notifications WHERE email = $1
		ORDER BY ts DESC
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Email, &n.Message, &n.Type, &n.Timestamp, &n.Month, &n.Year); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Latest returns the most recent notification, nil when there are none.
func (r *Repo) Latest(ctx context.Context, email string) (*Notification, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, message, type, ts, month, year
		FROM notifications WHERE email = $1
		ORDER BY ts DESC LIMIT 1
	`, email)

	var n Notification
	if err := row.Scan(&n.ID, &n.Email, &n.Message, &n.Type, &n.Timestamp, &n.Month, &n.Year); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}
