package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/planboard/capacity-backend-go/internal/domain/assignment"
	"github.com/planboard/capacity-backend-go/internal/pkg/calendar"
	"github.com/planboard/capacity-backend-go/internal/pkg/database"
)

type feedRepositoryImpl struct {
	db *database.DB
}

func NewFeedRepository(db *database.DB) assignment.FeedRepository {
	return &feedRepositoryImpl{db: db}
}

// ListRows implements assignment.FeedRepository.
func (r *feedRepositoryImpl) ListRows(ctx context.Context, fromYear, toYear int) ([]assignment.RawRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, engineer_id, engineer_name, week, year, project_code, weekly_hours, is_tentative, updated_at
		FROM assignment_rows
		WHERE year BETWEEN $1 AND $2
	`

	rows, err := q.Query(ctx, query, fromYear, toYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment rows: %w", err)
	}
	defer rows.Close()

	var result []assignment.RawRow
	for rows.Next() {
		var row assignment.RawRow
		var week int
		if err := rows.Scan(&row.ID, &row.EngineerID, &row.EngineerName, &week, &row.Year,
			&row.ProjectCode, &row.Hours, &row.Tentative, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		row.WeekLabel = calendar.WeekKey{Week: week, Year: row.Year}.Label()
		result = append(result, row)
	}
	return result, rows.Err()
}

// Upsert implements assignment.FeedRepository. A planner edit replaces
// any existing row for the same planning cell.
func (r *feedRepositoryImpl) Upsert(ctx context.Context, row assignment.RawRow) (assignment.RawRow, error) {
	q := GetQuerier(ctx, r.db)

	week, err := calendar.ParseWeekLabel(row.WeekLabel)
	if err != nil {
		return assignment.RawRow{}, assignment.ErrInvalidWeekLabel
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}

	query := `
		INSERT INTO assignment_rows (id, engineer_id, engineer_name, week, year, project_code, weekly_hours, is_tentative, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (engineer_id, week, year)
		DO UPDATE SET
			project_code = EXCLUDED.project_code,
			weekly_hours = EXCLUDED.weekly_hours,
			is_tentative = EXCLUDED.is_tentative,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err = q.QueryRow(ctx, query, row.ID, row.EngineerID, row.EngineerName,
		week.Week, week.Year, row.ProjectCode, row.Hours, row.Tentative).
		Scan(&row.ID, &row.UpdatedAt)
	if err != nil {
		return assignment.RawRow{}, fmt.Errorf("failed to upsert assignment row: %w", err)
	}
	row.Year = week.Year
	return row, nil
}

// UpsertMany implements assignment.FeedRepository. The rows ride a
// single transaction so a multi-cell edit (pasting a row of weeks)
// never half-applies.
func (r *feedRepositoryImpl) UpsertMany(ctx context.Context, rows []assignment.RawRow) ([]assignment.RawRow, error) {
	saved := make([]assignment.RawRow, 0, len(rows))
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		for _, row := range rows {
			out, err := r.Upsert(txCtx, row)
			if err != nil {
				return err
			}
			saved = append(saved, out)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Delete implements assignment.FeedRepository.
func (r *feedRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM assignment_rows WHERE id = $1 RETURNING id`

	var deletedID string
	if err := q.QueryRow(ctx, query, id).Scan(&deletedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assignment.ErrRowNotFound
		}
		return fmt.Errorf("failed to delete assignment row %s: %w", id, err)
	}
	return nil
}
