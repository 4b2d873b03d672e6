package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type healthRepository struct {
	db *sqlx.DB
}

func NewHealthRepository(db *sqlx.DB) HealthRepository {
	return &healthRepository{db: db}
}

func (r *healthRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *healthRepository) CountTables(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `
			SELECT COUNT(*)
			FROM information_schema.tables
			WHERE table_schema = 'public'
		`)

	if err != nil {
		return 0, fmt.Errorf("failed to count database tables: %w", err)
	}

	return count, nil
}
