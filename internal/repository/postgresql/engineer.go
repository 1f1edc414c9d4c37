package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/planboard/capacity-backend-go/internal/domain/catalog"
	"github.com/planboard/capacity-backend-go/internal/pkg/database"
)

type engineerRepositoryImpl struct {
	db *database.DB
}

func NewEngineerRepository(db *database.DB) catalog.EngineerRepository {
	return &engineerRepositoryImpl{db: db}
}

// GetAll implements catalog.EngineerRepository.
func (r *engineerRepositoryImpl) GetAll(ctx context.Context) ([]catalog.Engineer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, display_name, status, created_at, updated_at
		FROM engineers
		WHERE deleted_at IS NULL
		ORDER BY display_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list engineers: %w", err)
	}
	defer rows.Close()

	var engineers []catalog.Engineer
	for rows.Next() {
		var e catalog.Engineer
		if err := rows.Scan(&e.ID, &e.DisplayName, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan engineer: %w", err)
		}
		engineers = append(engineers, e)
	}
	return engineers, rows.Err()
}

// GetByID implements catalog.EngineerRepository.
func (r *engineerRepositoryImpl) GetByID(ctx context.Context, id string) (catalog.Engineer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, display_name, status, created_at, updated_at
		FROM engineers
		WHERE id = $1 AND deleted_at IS NULL
	`

	var e catalog.Engineer
	err := q.QueryRow(ctx, query, id).Scan(&e.ID, &e.DisplayName, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Engineer{}, catalog.ErrEngineerNotFound
		}
		return catalog.Engineer{}, fmt.Errorf("failed to get engineer %s: %w", id, err)
	}
	return e, nil
}
