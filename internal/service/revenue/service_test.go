package revenue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planboard/capacity-backend-go/internal/domain/assignment"
	"github.com/planboard/capacity-backend-go/internal/domain/catalog"
	"github.com/planboard/capacity-backend-go/internal/pkg/calendar"
	"github.com/planboard/capacity-backend-go/internal/service/feed"
)

func ptr[T any](v T) *T { return &v }

func newAggregator() *Aggregator {
	return NewAggregator(calendar.NewMapper(2024, 2026), 800, 100, nil)
}

func record(engineerID string, week calendar.WeekKey, code string, hours float64, tentative bool) assignment.Record {
	kind := assignment.ParseKind(code)
	rec := assignment.Record{
		Key:       assignment.Key{EngineerID: engineerID, Week: week},
		Kind:      kind,
		Hours:     hours,
		Tentative: tentative,
	}
	if kind == assignment.KindProject {
		rec.ProjectCode = code
	}
	return rec
}

func snapshot(projects []catalog.Project, records ...assignment.Record) feed.Snapshot {
	index := make(map[string]catalog.Project, len(projects))
	for _, p := range projects {
		index[p.Code] = p
	}
	return feed.Snapshot{Records: records, Projects: index}
}

func stFem() catalog.Project {
	return catalog.Project{
		ID:                "prj-1",
		Code:              "ST_FEM",
		Name:              "Statics FEM",
		Type:              catalog.ProjectTypeWP,
		AverageHourlyRate: ptr(900.0),
		Status:            catalog.ProjectStatusRealizace,
	}
}

// CW24-2025 (Jun 9-13) lies fully inside June 2025, which has no Czech
// public holidays: holiday coefficient 1.0, probability 1.0.
func TestMonthlyEndToEnd(t *testing.T) {
	agg := newAggregator()
	week := calendar.WeekKey{Week: 24, Year: 2025}

	monthly := agg.Monthly(snapshot(
		[]catalog.Project{stFem()},
		record("eng-1", week, "ST_FEM", 36, false),
	), calendar.CountryCzech)

	require.Contains(t, monthly, calendar.MonthKey("červen_2025"))
	assert.Equal(t, 36.0*900.0, monthly["červen_2025"]["ST_FEM"])
}

// CW27-2025 (Jun 30 - Jul 4) splits 0.2/0.8 between June and July
// 2025; neither month loses a weekday to a Czech holiday, so the split
// must conserve the full week's revenue.
func TestMonthlySplitWeekConservesRevenue(t *testing.T) {
	agg := newAggregator()
	week := calendar.WeekKey{Week: 27, Year: 2025}

	project := stFem()
	project.AverageHourlyRate = ptr(1000.0)

	monthly := agg.Monthly(snapshot(
		[]catalog.Project{project},
		record("eng-1", week, "ST_FEM", 40, false),
	), calendar.CountryCzech)

	june := monthly["červen_2025"]["ST_FEM"]
	july := monthly["červenec_2025"]["ST_FEM"]
	assert.InDelta(t, 8000, june, 1e-9)
	assert.InDelta(t, 32000, july, 1e-9)
	assert.InDelta(t, 40*1000, june+july, 1e-9)
}

func TestMonthlyAppliesHolidayCoefficient(t *testing.T) {
	agg := newAggregator()
	// CW42-2025 (Oct 13-17) is fully inside October 2025; Oct 28 is a
	// Tuesday, so the Czech coefficient is 22/23.
	week := calendar.WeekKey{Week: 42, Year: 2025}

	monthly := agg.Monthly(snapshot(
		[]catalog.Project{stFem()},
		record("eng-1", week, "ST_FEM", 36, false),
	), calendar.CountryCzech)

	assert.InDelta(t, 36*900*(22.0/23.0), monthly["říjen_2025"]["ST_FEM"], 1e-9)
}

func TestMonthlyExcludesTentative(t *testing.T) {
	agg := newAggregator()
	week := calendar.WeekKey{Week: 24, Year: 2025}

	monthly := agg.Monthly(snapshot(
		[]catalog.Project{stFem()},
		record("eng-1", week, "ST_FEM", 36, true),
	), calendar.CountryCzech)

	assert.Empty(t, monthly)
}

func TestMonthlyExcludesPseudoCodes(t *testing.T) {
	agg := newAggregator()
	week := calendar.WeekKey{Week: 24, Year: 2025}

	monthly := agg.Monthly(snapshot(
		[]catalog.Project{stFem()},
		record("eng-1", week, "DOVOLENÁ", 40, false),
		record("eng-2", week, "NEMOC", 40, false),
		record("eng-3", week, "FREE", 40, false),
		record("eng-4", week, "OVER", 40, false),
	), calendar.CountryCzech)

	assert.Empty(t, monthly)
}

func TestMonthlySkipsUnknownProjectAndMissingRate(t *testing.T) {
	agg := newAggregator()
	week := calendar.WeekKey{Week: 24, Year: 2025}

	noRate := stFem()
	noRate.Code = "NO_RATE"
	noRate.AverageHourlyRate = nil // WP without a rate earns nothing

	monthly := agg.Monthly(snapshot(
		[]catalog.Project{noRate},
		record("eng-1", week, "GHOST_PRJ", 40, false),
		record("eng-2", week, "NO_RATE", 40, false),
	), calendar.CountryCzech)

	assert.Empty(t, monthly)
}

func TestMonthlySkipsUnmappedWeek(t *testing.T) {
	agg := newAggregator()
	week := calendar.WeekKey{Week: 10, Year: 2030} // outside horizon

	monthly := agg.Monthly(snapshot(
		[]catalog.Project{stFem()},
		record("eng-1", week, "ST_FEM", 36, false),
	), calendar.CountryCzech)

	assert.Empty(t, monthly)
}

func TestMonthlyWeightsPresalesProbability(t *testing.T) {
	agg := newAggregator()
	week := calendar.WeekKey{Week: 24, Year: 2025}

	presales := stFem()
	presales.Status = catalog.ProjectStatusPresales
	presales.Probability = 50

	monthly := agg.Monthly(snapshot(
		[]catalog.Project{presales},
		record("eng-1", week, "ST_FEM", 36, false),
	), calendar.CountryCzech)

	assert.InDelta(t, 36*900*0.5, monthly["červen_2025"]["ST_FEM"], 1e-9)
}

func TestPresalesSynthesisHodinovkaDefaultHours(t *testing.T) {
	agg := newAggregator()

	presales := catalog.Project{
		Code:              "BID_X",
		Type:              catalog.ProjectTypeHodinovka,
		AverageHourlyRate: ptr(800.0),
		Status:            catalog.ProjectStatusPresales,
		Probability:       60,
		PresalesStartDate: ptr(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)),
		PresalesEndDate:   ptr(time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC)),
	}

	monthly := agg.Monthly(snapshot([]catalog.Project{presales}), calendar.CountryCzech)

	// June has 21 working days, July 23 (Jul 5/6 fall on a weekend).
	total := 100.0 * 800.0 * 0.6
	assert.InDelta(t, total*21.0/44.0, monthly["červen_2025"]["BID_X"], 1e-9)
	assert.InDelta(t, total*23.0/44.0, monthly["červenec_2025"]["BID_X"], 1e-9)
}

func TestPresalesSynthesisWPBudgetAsHours(t *testing.T) {
	agg := newAggregator()

	presales := catalog.Project{
		Code:              "BID_WP",
		Type:              catalog.ProjectTypeWP,
		AverageHourlyRate: ptr(900.0),
		Budget:            ptr(200.0), // read as hours for WP presales
		Status:            catalog.ProjectStatusPresales,
		Probability:       100,
		PresalesStartDate: ptr(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)),
		PresalesEndDate:   ptr(time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)),
	}

	monthly := agg.Monthly(snapshot([]catalog.Project{presales}), calendar.CountryCzech)
	assert.InDelta(t, 200*900, monthly["červen_2025"]["BID_WP"], 1e-9)
}

func TestPresalesSynthesisSkippedWhenAssigned(t *testing.T) {
	agg := newAggregator()
	week := calendar.WeekKey{Week: 24, Year: 2025}

	presales := stFem()
	presales.Status = catalog.ProjectStatusPresales
	presales.Probability = 100
	presales.PresalesStartDate = ptr(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	presales.PresalesEndDate = ptr(time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC))
	presales.Budget = ptr(1000.0)

	monthly := agg.Monthly(snapshot(
		[]catalog.Project{presales},
		record("eng-1", week, "ST_FEM", 36, false),
	), calendar.CountryCzech)

	// Real rows only; the synthesized estimate must not double-count.
	assert.Equal(t, 36.0*900.0, monthly["červen_2025"]["ST_FEM"])
}

func TestQuarterlyAndAnnualRollups(t *testing.T) {
	agg := newAggregator()
	monthly := MonthlyRevenue{
		"říjen_2025":    {"ST_FEM": 100, "OTHER": 50},
		"listopad_2025": {"ST_FEM": 200},
		"leden_2026":    {"ST_FEM": 40},
	}

	quarterly := agg.Quarterly(monthly)
	require.Contains(t, quarterly, QuarterKey("Q4_2025"))
	assert.Equal(t, 300.0, quarterly["Q4_2025"]["ST_FEM"])
	assert.Equal(t, 50.0, quarterly["Q4_2025"]["OTHER"])
	assert.Equal(t, 40.0, quarterly["Q1_2026"]["ST_FEM"])

	annual := agg.Annual(monthly)
	assert.Equal(t, 300.0, annual[2025]["ST_FEM"])
	assert.Equal(t, 40.0, annual[2026]["ST_FEM"])
}

func TestZeroHoursContributeZero(t *testing.T) {
	agg := newAggregator()
	week := calendar.WeekKey{Week: 24, Year: 2025}

	monthly := agg.Monthly(snapshot(
		[]catalog.Project{stFem()},
		record("eng-1", week, "ST_FEM", 0, false),
	), calendar.CountryCzech)

	assert.Equal(t, 0.0, monthly["červen_2025"]["ST_FEM"])
}
