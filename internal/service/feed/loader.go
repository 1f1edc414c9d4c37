package feed

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/planboard/capacity-backend-go/internal/domain/assignment"
	"github.com/planboard/capacity-backend-go/internal/domain/catalog"
)

// Loader produces a fresh feed snapshot from the backing store.
type Loader interface {
	Load(ctx context.Context) (Snapshot, error)
}

// SnapshotLoader fetches assignment rows and catalogs in parallel and
// normalizes them into a snapshot.
type SnapshotLoader struct {
	feedRepo     assignment.FeedRepository
	engineerRepo catalog.EngineerRepository
	projectRepo  catalog.ProjectRepository
	licenseRepo  catalog.LicenseRepository
	fromYear     int
	toYear       int
	logger       *slog.Logger
}

func NewSnapshotLoader(
	feedRepo assignment.FeedRepository,
	engineerRepo catalog.EngineerRepository,
	projectRepo catalog.ProjectRepository,
	licenseRepo catalog.LicenseRepository,
	fromYear, toYear int,
	logger *slog.Logger,
) *SnapshotLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotLoader{
		feedRepo:     feedRepo,
		engineerRepo: engineerRepo,
		projectRepo:  projectRepo,
		licenseRepo:  licenseRepo,
		fromYear:     fromYear,
		toYear:       toYear,
		logger:       logger,
	}
}

// Load implements Loader. One query per collection, run concurrently.
func (l *SnapshotLoader) Load(ctx context.Context) (Snapshot, error) {
	var (
		rows      []assignment.RawRow
		engineers []catalog.Engineer
		projects  []catalog.Project
		licenses  []catalog.License
		links     []catalog.ProjectLicenseLink
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = l.feedRepo.ListRows(gCtx, l.fromYear, l.toYear)
		return err
	})
	g.Go(func() error {
		var err error
		engineers, err = l.engineerRepo.GetAll(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = l.projectRepo.GetAll(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		licenses, err = l.licenseRepo.GetAll(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		links, err = l.licenseRepo.GetLinks(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("load feed snapshot: %w", err)
	}

	resolver := NewResolver(engineers)
	records := Normalize(rows, resolver, l.logger)

	engineerIndex := make(map[string]catalog.Engineer, len(engineers))
	for _, e := range engineers {
		engineerIndex[e.ID] = e
	}
	projectIndex := make(map[string]catalog.Project, len(projects))
	for _, p := range projects {
		projectIndex[p.Code] = p
	}

	return Snapshot{
		Records:   records,
		Engineers: engineerIndex,
		Projects:  projectIndex,
		Licenses:  licenses,
		Links:     links,
	}, nil
}
