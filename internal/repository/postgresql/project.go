package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/planboard/capacity-backend-go/internal/domain/catalog"
	"github.com/planboard/capacity-backend-go/internal/pkg/database"
)

type projectRepositoryImpl struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) catalog.ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

const projectColumns = `
	id, code, name, customer_id, program_id, project_manager_id,
	project_type, average_hourly_rate, budget, project_status,
	probability, presales_phase, presales_start_date, presales_end_date,
	created_at, updated_at
`

func scanProject(row pgx.Row) (catalog.Project, error) {
	var p catalog.Project
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.CustomerID, &p.ProgramID, &p.ProjectManagerID,
		&p.Type, &p.AverageHourlyRate, &p.Budget, &p.Status,
		&p.Probability, &p.PresalesPhase, &p.PresalesStartDate, &p.PresalesEndDate,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// GetAll implements catalog.ProjectRepository.
func (r *projectRepositoryImpl) GetAll(ctx context.Context) ([]catalog.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE deleted_at IS NULL
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []catalog.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetByCode implements catalog.ProjectRepository.
func (r *projectRepositoryImpl) GetByCode(ctx context.Context, code string) (catalog.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE code = $1 AND deleted_at IS NULL
	`

	p, err := scanProject(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Project{}, catalog.ErrProjectNotFound
		}
		return catalog.Project{}, fmt.Errorf("failed to get project %s: %w", code, err)
	}
	return p, nil
}
