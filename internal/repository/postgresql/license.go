package postgresql

import (
	"context"
	"fmt"

	"github.com/planboard/capacity-backend-go/internal/domain/catalog"
	"github.com/planboard/capacity-backend-go/internal/pkg/database"
)

type licenseRepositoryImpl struct {
	db *database.DB
}

func NewLicenseRepository(db *database.DB) catalog.LicenseRepository {
	return &licenseRepositoryImpl{db: db}
}

// GetAll implements catalog.LicenseRepository.
func (r *licenseRepositoryImpl) GetAll(ctx context.Context) ([]catalog.License, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, provider, total_seats, cost, expiration_date, created_at, updated_at
		FROM licenses
		WHERE deleted_at IS NULL
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	defer rows.Close()

	var licenses []catalog.License
	for rows.Next() {
		var l catalog.License
		if err := rows.Scan(&l.ID, &l.Name, &l.Provider, &l.TotalSeats, &l.Cost, &l.ExpirationDate, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan license: %w", err)
		}
		licenses = append(licenses, l)
	}
	return licenses, rows.Err()
}

// GetLinks implements catalog.LicenseRepository.
func (r *licenseRepositoryImpl) GetLinks(ctx context.Context) ([]catalog.ProjectLicenseLink, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, project_id, license_id, percentage, created_at, updated_at
		FROM project_license_links
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list project license links: %w", err)
	}
	defer rows.Close()

	var links []catalog.ProjectLicenseLink
	for rows.Next() {
		var l catalog.ProjectLicenseLink
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.LicenseID, &l.Percentage, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project license link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
