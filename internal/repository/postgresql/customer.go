package postgresql

import (
	"context"
	"fmt"

	"github.com/planboard/capacity-backend-go/internal/domain/catalog"
	"github.com/planboard/capacity-backend-go/internal/pkg/database"
)

type customerRepositoryImpl struct {
	db *database.DB
}

func NewCustomerRepository(db *database.DB) catalog.CustomerRepository {
	return &customerRepositoryImpl{db: db}
}

// GetAll implements catalog.CustomerRepository.
func (r *customerRepositoryImpl) GetAll(ctx context.Context) ([]catalog.Customer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, created_at, updated_at
		FROM customers
		WHERE deleted_at IS NULL
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []catalog.Customer
	for rows.Next() {
		var c catalog.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

type programRepositoryImpl struct {
	db *database.DB
}

func NewProgramRepository(db *database.DB) catalog.ProgramRepository {
	return &programRepositoryImpl{db: db}
}

// GetAll implements catalog.ProgramRepository.
func (r *programRepositoryImpl) GetAll(ctx context.Context) ([]catalog.Program, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, created_at, updated_at
		FROM programs
		WHERE deleted_at IS NULL
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	var programs []catalog.Program
	for rows.Next() {
		var p catalog.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}
