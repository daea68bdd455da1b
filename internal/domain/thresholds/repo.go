package thresholds

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Get returns the household's unit limit; ok=false when none was set.
func (r *Repo) Get(ctx context.Context, email string) (int, bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT threshold FROM thresholds WHERE email = $1`, email)

	var limit int
	if err := row.Scan(&limit); err != nil {
		if err == pgx.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}
	return limit, true, nil
}

// Set upserts the limit. Validation (integer >= 0) happens at the API
// boundary, the repo stores what it is given.
func (r *Repo) Set(ctx context.Context, email string, limit int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO thresholds (email, threshold)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET
		  threshold = EXCLUDED.threshold, updated_at = now()
	`, email, limit)
	return err
}
