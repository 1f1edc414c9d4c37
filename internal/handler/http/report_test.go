package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/planboard/capacity-backend-go/internal/domain/assignment"
	"github.com/planboard/capacity-backend-go/internal/domain/catalog"
	"github.com/planboard/capacity-backend-go/internal/pkg/calendar"
	"github.com/planboard/capacity-backend-go/internal/service/capacity"
	"github.com/planboard/capacity-backend-go/internal/service/feed"
	"github.com/planboard/capacity-backend-go/internal/service/license"
	"github.com/planboard/capacity-backend-go/internal/service/revenue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshotStore(t *testing.T) *feed.Store {
	t.Helper()

	rate := 900.0
	store := feed.NewStore()
	store.Reconcile(feed.Snapshot{
		Records: []assignment.Record{
			{
				Key:         assignment.Key{EngineerID: "eng-1", Week: calendar.WeekKey{Week: 24, Year: 2025}},
				Kind:        assignment.KindProject,
				ProjectCode: "ST_FEM",
				Hours:       36,
				UpdatedAt:   time.Now(),
			},
			{
				Key:       assignment.Key{EngineerID: "eng-2", Week: calendar.WeekKey{Week: 24, Year: 2025}},
				Kind:      assignment.KindVacation,
				UpdatedAt: time.Now(),
			},
		},
		Engineers: map[string]catalog.Engineer{
			"eng-1": {ID: "eng-1", DisplayName: "Jan Novák", Status: catalog.EngineerStatusActive},
			"eng-2": {ID: "eng-2", DisplayName: "Petra Dvořáková", Status: catalog.EngineerStatusActive},
		},
		Projects: map[string]catalog.Project{
			"ST_FEM": {
				ID:                "prj-1",
				Code:              "ST_FEM",
				Type:              catalog.ProjectTypeHodinovka,
				AverageHourlyRate: &rate,
				Status:            catalog.ProjectStatusRealizace,
			},
		},
		Licenses: []catalog.License{
			{ID: "lic-1", Name: "AutoCAD", TotalSeats: 1},
		},
		Links: []catalog.ProjectLicenseLink{
			{ID: "link-1", ProjectID: "prj-1", LicenseID: "lic-1", Percentage: 100},
		},
	})
	return store
}

func testReportRouter(t *testing.T) *chi.Mux {
	t.Helper()

	mapper := calendar.NewMapper(2024, 2026)
	handler := NewReportHandler(
		testSnapshotStore(t),
		revenue.NewAggregator(mapper, 800, 100, nil),
		license.NewAggregator(nil, nil),
		capacity.NewClassifier(),
	)

	r := chi.NewRouter()
	r.Get("/reports/revenue/monthly", handler.RevenueMonthly)
	r.Get("/reports/revenue/quarterly", handler.RevenueQuarterly)
	r.Get("/reports/licenses/{week}", handler.LicenseDemand)
	r.Get("/reports/capacity", handler.Capacity)
	r.Get("/reports/capacity/free-by-week", handler.FreeCapacityByWeek)
	return r
}

func TestRevenueMonthlyEndpoint(t *testing.T) {
	router := testReportRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/revenue/monthly", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Revenue map[string]map[string]float64 `json:"revenue"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	// CW24-2025 lies fully inside June: 36h * 900.
	assert.InDelta(t, 32400.0, body.Data.Revenue["červen_2025"]["ST_FEM"], 0.001)
}

func TestRevenueMonthlyRejectsUnknownCountry(t *testing.T) {
	router := testReportRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/revenue/monthly?country=DE", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLicenseDemandEndpoint(t *testing.T) {
	router := testReportRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/licenses/CW24-2025", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Week   string                    `json:"week"`
			Demand map[string]license.Demand `json:"demand"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "CW24-2025", body.Data.Week)
	require.Contains(t, body.Data.Demand, "lic-1")
	assert.Equal(t, 1, body.Data.Demand["lic-1"].RequiredSeats)
}

func TestLicenseDemandRejectsMalformedWeek(t *testing.T) {
	router := testReportRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/licenses/week-24", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCapacityEndpoint(t *testing.T) {
	router := testReportRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/capacity?from=CW24-2025&to=CW25-2025", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Capacity map[string]capacity.EngineerCapacity `json:"capacity"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Data.Capacity, "eng-1")
	assert.Equal(t, 1, body.Data.Capacity["eng-1"].BusyWeeks)
}

func TestCapacityRejectsInvertedRange(t *testing.T) {
	router := testReportRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/capacity?from=CW25-2025&to=CW24-2025", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFreeCapacityByWeekEndpoint(t *testing.T) {
	router := testReportRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/capacity/free-by-week?from=CW24-2025&to=CW24-2025", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Free map[string]int `json:"free"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// eng-1 works, eng-2 is on vacation: nobody is free in CW24.
	assert.Equal(t, 0, body.Data.Free["CW24-2025"])
}
