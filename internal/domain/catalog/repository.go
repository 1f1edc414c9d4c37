package catalog

import "context"

type EngineerRepository interface {
	GetAll(ctx context.Context) ([]Engineer, error)
	GetByID(ctx context.Context, id string) (Engineer, error)
}

type ProjectRepository interface {
	GetAll(ctx context.Context) ([]Project, error)
	GetByCode(ctx context.Context, code string) (Project, error)
}

type LicenseRepository interface {
	GetAll(ctx context.Context) ([]License, error)
	GetLinks(ctx context.Context) ([]ProjectLicenseLink, error)
}

type CustomerRepository interface {
	GetAll(ctx context.Context) ([]Customer, error)
}

type ProgramRepository interface {
	GetAll(ctx context.Context) ([]Program, error)
}
