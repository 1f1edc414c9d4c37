package license

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planboard/capacity-backend-go/internal/domain/assignment"
	"github.com/planboard/capacity-backend-go/internal/domain/catalog"
	"github.com/planboard/capacity-backend-go/internal/pkg/calendar"
	"github.com/planboard/capacity-backend-go/internal/service/feed"
)

var week40 = calendar.WeekKey{Week: 40, Year: 2025}

func record(engineerID, code string, hours float64) assignment.Record {
	kind := assignment.ParseKind(code)
	rec := assignment.Record{
		Key:   assignment.Key{EngineerID: engineerID, Week: week40},
		Kind:  kind,
		Hours: hours,
	}
	if kind == assignment.KindProject {
		rec.ProjectCode = code
	}
	return rec
}

func buildSnapshot(records ...assignment.Record) feed.Snapshot {
	engineers := map[string]catalog.Engineer{
		"eng-1": {ID: "eng-1", DisplayName: "Jiří Novák"},
		"eng-2": {ID: "eng-2", DisplayName: "Petra Dvořáková"},
		"eng-3": {ID: "eng-3", DisplayName: "Tomáš Malý"},
		"eng-4": {ID: "eng-4", DisplayName: "Eva Horká"},
	}
	projects := map[string]catalog.Project{
		"ST_FEM": {ID: "prj-1", Code: "ST_FEM"},
		"OTHER":  {ID: "prj-2", Code: "OTHER"},
	}
	licenses := []catalog.License{
		{ID: "lic-1", Name: "AutoCAD", TotalSeats: 5},
	}
	links := []catalog.ProjectLicenseLink{
		{ID: "lnk-1", ProjectID: "prj-1", LicenseID: "lic-1", Percentage: 50},
	}
	return feed.Snapshot{
		Records:   records,
		Engineers: engineers,
		Projects:  projects,
		Licenses:  licenses,
		Links:     links,
	}
}

// Per the seat-demand rule, the per-project ceil figure feeds only the
// breakdown; the seat total is the size of the unique-engineer union.
func TestWeeklyDemandEndToEnd(t *testing.T) {
	agg := NewAggregator(nil, nil)
	snap := buildSnapshot(
		record("eng-1", "ST_FEM", 40),
		record("eng-2", "ST_FEM", 40),
		record("eng-3", "ST_FEM", 40),
		record("eng-4", "ST_FEM", 40),
	)

	demand := agg.WeeklyDemand(snap, week40)
	autocad, ok := demand["AutoCAD"]
	require.True(t, ok)

	require.Len(t, autocad.Breakdown, 1)
	assert.Equal(t, 2, autocad.Breakdown[0].Seats) // ceil(4*50/100)
	assert.Equal(t, 4, autocad.Breakdown[0].Engineers)
	assert.Equal(t, 4, autocad.RequiredSeats) // union of engineers, not the ceil figure
	assert.False(t, autocad.OverAllocated)
	assert.Equal(t, "ST_FEM (2)", autocad.Summary())
}

// An engineer contributing to the same license from two projects in one
// week counts once toward the seat total, not once per project.
func TestWeeklyDemandDedupsEngineerAcrossProjects(t *testing.T) {
	agg := NewAggregator(nil, nil)
	snap := buildSnapshot(
		record("eng-1", "ST_FEM", 20),
		record("eng-1", "OTHER", 20),
	)
	// Both projects demand the same license at 60% each.
	snap.Links = []catalog.ProjectLicenseLink{
		{ID: "lnk-1", ProjectID: "prj-1", LicenseID: "lic-1", Percentage: 60},
		{ID: "lnk-2", ProjectID: "prj-2", LicenseID: "lic-1", Percentage: 60},
	}

	demand := agg.WeeklyDemand(snap, week40)
	autocad := demand["AutoCAD"]
	assert.Equal(t, 1, autocad.RequiredSeats)
	require.Len(t, autocad.Breakdown, 2)
	for _, b := range autocad.Breakdown {
		assert.Equal(t, 1, b.Seats) // ceil(1*60/100)
	}
}

func TestWeeklyDemandExcludesPseudoAndZeroHours(t *testing.T) {
	agg := NewAggregator(nil, nil)
	snap := buildSnapshot(
		record("eng-1", "ST_FEM", 40),
		record("eng-2", "DOVOLENÁ", 40),
		record("eng-3", "ST_FEM", 0), // zero hours never demand a seat
		record("eng-4", "FREE", 40),
	)

	demand := agg.WeeklyDemand(snap, week40)
	assert.Equal(t, 1, demand["AutoCAD"].RequiredSeats)
}

func TestWeeklyDemandExcludesSuppliers(t *testing.T) {
	// Supplier names match through normalization: diacritics and casing
	// in the exclusion list do not matter.
	agg := NewAggregator([]string{"jiri NOVAK"}, nil)
	snap := buildSnapshot(
		record("eng-1", "ST_FEM", 40), // Jiří Novák, excluded
		record("eng-2", "ST_FEM", 40),
	)

	demand := agg.WeeklyDemand(snap, week40)
	assert.Equal(t, 1, demand["AutoCAD"].RequiredSeats)
}

func TestWeeklyDemandOverAllocation(t *testing.T) {
	agg := NewAggregator(nil, nil)
	snap := buildSnapshot(
		record("eng-1", "ST_FEM", 40),
		record("eng-2", "ST_FEM", 40),
		record("eng-3", "ST_FEM", 40),
	)
	snap.Licenses[0].TotalSeats = 2

	demand := agg.WeeklyDemand(snap, week40)
	autocad := demand["AutoCAD"]
	assert.Equal(t, 3, autocad.RequiredSeats)
	assert.True(t, autocad.OverAllocated)
}

func TestWeeklyDemandIgnoresOtherWeeks(t *testing.T) {
	agg := NewAggregator(nil, nil)
	other := record("eng-1", "ST_FEM", 40)
	other.Key.Week = calendar.WeekKey{Week: 41, Year: 2025}
	snap := buildSnapshot(other)

	demand := agg.WeeklyDemand(snap, week40)
	assert.Equal(t, 0, demand["AutoCAD"].RequiredSeats)
	assert.Empty(t, demand["AutoCAD"].Breakdown)
}

func TestWeeklyDemandIncludesTentative(t *testing.T) {
	// License demand does not distinguish tentative assignments: a
	// provisionally planned engineer still needs a seat.
	agg := NewAggregator(nil, nil)
	tentative := record("eng-1", "ST_FEM", 40)
	tentative.Tentative = true
	snap := buildSnapshot(tentative)

	demand := agg.WeeklyDemand(snap, week40)
	assert.Equal(t, 1, demand["AutoCAD"].RequiredSeats)
}
