package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/planboard/capacity-backend-go/internal/config"
	appHTTP "github.com/planboard/capacity-backend-go/internal/handler/http"
	"github.com/planboard/capacity-backend-go/internal/pkg/calendar"
	"github.com/planboard/capacity-backend-go/internal/pkg/cron"
	"github.com/planboard/capacity-backend-go/internal/pkg/database"
	"github.com/planboard/capacity-backend-go/internal/pkg/jwt"
	"github.com/planboard/capacity-backend-go/internal/pkg/sse"
	"github.com/planboard/capacity-backend-go/internal/repository/postgresql"
	"github.com/planboard/capacity-backend-go/internal/service/capacity"
	"github.com/planboard/capacity-backend-go/internal/service/feed"
	"github.com/planboard/capacity-backend-go/internal/service/license"
	"github.com/planboard/capacity-backend-go/internal/service/revenue"
)

// overAllocationHorizonWeeks bounds how far ahead the refresh hook
// scans for license over-allocation before alerting.
const overAllocationHorizonWeeks = 8

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "capacity-backend"),
	)

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	engineerRepo := postgresql.NewEngineerRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	licenseRepo := postgresql.NewLicenseRepository(db)
	customerRepo := postgresql.NewCustomerRepository(db)
	programRepo := postgresql.NewProgramRepository(db)
	feedRepo := postgresql.NewFeedRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	mapper := calendar.NewMapper(cfg.Planning.HorizonStartYear, cfg.Planning.HorizonEndYear)
	revenueAgg := revenue.NewAggregator(mapper, cfg.Planning.DefaultHourlyRate, cfg.Planning.PresalesDefaultHours, logger)
	licenseAgg := license.NewAggregator(cfg.Planning.ExcludedSuppliers, logger)
	classifier := capacity.NewClassifier()

	store := feed.NewStore()
	loader := feed.NewSnapshotLoader(
		feedRepo,
		engineerRepo,
		projectRepo,
		licenseRepo,
		cfg.Planning.HorizonStartYear,
		cfg.Planning.HorizonEndYear,
		logger,
	)
	refresher := feed.NewRefresher(store, loader, cfg.Planning.RefreshDebounce, logger, func(snap feed.Snapshot) {
		hub.Publish(sse.Event{
			Topic: sse.TopicFeedUpdated,
			Data: map[string]interface{}{
				"version": snap.Version,
				"records": len(snap.Records),
			},
		})
		publishOverAllocations(hub, licenseAgg, snap, logger)
	})
	defer refresher.Stop()

	// Initial load so the first request never sees an empty board.
	if err := refresher.RefreshNow(context.Background()); err != nil {
		logger.Error("initial feed load failed", "error", err)
	}

	scheduler := cron.NewScheduler(logger)
	feedJobs := cron.NewFeedJobs(refresher, cfg.Planning.PollInterval)
	feedJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(jwtService, cfg.App.Env)
	reportHandler := appHTTP.NewReportHandler(store, revenueAgg, licenseAgg, classifier)
	assignmentHandler := appHTTP.NewAssignmentHandler(store, refresher, feedRepo)
	catalogHandler := appHTTP.NewCatalogHandler(engineerRepo, projectRepo, licenseRepo, customerRepo, programRepo)
	feedHandler := appHTTP.NewFeedHandler(refresher, hub, jwtService)

	router := appHTTP.NewRouter(
		jwtService,
		cfg.App.FrontendURL,
		cfg.App.Env,
		authHandler,
		reportHandler,
		assignmentHandler,
		catalogHandler,
		feedHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

// publishOverAllocations scans the near-term weeks of the fresh
// snapshot and alerts the grid about licenses whose demand exceeds the
// owned seats.
func publishOverAllocations(hub *sse.Hub, licenseAgg *license.Aggregator, snap feed.Snapshot, logger *slog.Logger) {
	week := calendar.CurrentWeek()
	for i := 0; i < overAllocationHorizonWeeks; i++ {
		for _, demand := range licenseAgg.WeeklyDemand(snap, week) {
			if !demand.OverAllocated {
				continue
			}
			logger.Warn("license over-allocated",
				"license", demand.LicenseName,
				"week", week.Label(),
				"required", demand.RequiredSeats,
				"owned", demand.TotalSeats,
			)
			hub.Publish(sse.Event{
				Topic: sse.TopicOverAllocation,
				Data: map[string]interface{}{
					"license_id":     demand.LicenseID,
					"license_name":   demand.LicenseName,
					"week":           week.Label(),
					"required_seats": demand.RequiredSeats,
					"total_seats":    demand.TotalSeats,
					"breakdown":      demand.Summary(),
				},
			})
		}
		week = week.Next()
	}
}
