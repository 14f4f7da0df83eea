package interests

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sangamlabs/sangam/internal/common"
	"github.com/sangamlabs/sangam/internal/server/models"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a Postgres-backed implementation.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, interest *models.Interest) error {
	const query = `
        INSERT INTO interests (from_user_id, to_user_id)
        VALUES ($1, $2)
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, interest.FromUserID, interest.ToUserID).
		Scan(&interest.ID, &interest.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return common.ErrorAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to create interest: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListReceived(ctx context.Context, toUserID int64) ([]*models.Interest, error) {
	const query = `
        SELECT id, from_user_id, to_user_id, created_at
        FROM interests
        WHERE to_user_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, toUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}
	defer rows.Close()

	var result []*models.Interest
	for rows.Next() {
		var i models.Interest
		if err := rows.Scan(&i.ID, &i.FromUserID, &i.ToUserID, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interest: %w", err)
		}
		result = append(result, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}
	return result, nil
}
