package revenue

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/planboard/capacity-backend-go/internal/domain/catalog"
	"github.com/planboard/capacity-backend-go/internal/pkg/calendar"
	"github.com/planboard/capacity-backend-go/internal/service/feed"
)

// MonthlyRevenue maps monthKey -> projectCode -> accumulated revenue in
// the currency of the stored rates. Values stay unrounded; rounding is a
// presentation concern.
type MonthlyRevenue map[calendar.MonthKey]map[string]float64

func (m MonthlyRevenue) add(month calendar.MonthKey, projectCode string, amount float64) {
	if m[month] == nil {
		m[month] = make(map[string]float64)
	}
	m[month][projectCode] += amount
}

// Aggregator derives revenue views from a feed snapshot. It is pure and
// synchronous: data-quality gaps (unknown project, missing rate,
// unmapped week) are handled by omission, never by error.
type Aggregator struct {
	mapper               *calendar.Mapper
	defaultRate          float64
	presalesDefaultHours float64
	logger               *slog.Logger
}

func NewAggregator(mapper *calendar.Mapper, defaultRate, presalesDefaultHours float64, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		mapper:               mapper,
		defaultRate:          defaultRate,
		presalesDefaultHours: presalesDefaultHours,
		logger:               logger,
	}
}

// Monthly computes revenue per month per project:
// confirmed assignments first, then synthesized presales estimates for
// presales projects without any assignment rows.
func (a *Aggregator) Monthly(snap feed.Snapshot, country calendar.Country) MonthlyRevenue {
	result := make(MonthlyRevenue)
	assignedProjects := make(map[string]bool)

	for _, rec := range snap.Records {
		if !rec.Kind.EarnsRevenue() {
			continue
		}
		assignedProjects[rec.ProjectCode] = true

		// Tentative assignments never count as confirmed revenue.
		if rec.Tentative {
			continue
		}

		project, ok := snap.Projects[rec.ProjectCode]
		if !ok {
			a.logger.Debug("data quality: assignment references unknown project",
				"project_code", rec.ProjectCode, "week", rec.Key.Week.Label())
			continue
		}
		rate := project.ResolveHourlyRate(a.defaultRate)
		if rate <= 0 {
			continue
		}

		// Weeks outside the mapping horizon contribute nothing.
		for _, share := range a.mapper.MonthShares(rec.Key.Week) {
			hoursForMonth := rec.Hours * share.Ratio
			holidayCoef := calendar.HolidayCoefficient(share.MonthKey, country)
			probCoef := project.ProbabilityCoefficient()
			result.add(share.MonthKey, project.Code, hoursForMonth*rate*holidayCoef*probCoef)
		}
	}

	a.synthesizePresales(snap, assignedProjects, country, result)
	return result
}

// synthesizePresales estimates revenue for presales projects that have a
// date range and a resolvable rate but no assignment rows at all. The
// estimated total hours (WP: budget read as hours; Hodinovka: the
// configured default) are spread across the range's months by their
// working-day share, then probability-weighted.
func (a *Aggregator) synthesizePresales(snap feed.Snapshot, assignedProjects map[string]bool, country calendar.Country, result MonthlyRevenue) {
	for code, project := range snap.Projects {
		if !project.IsPresales() || assignedProjects[code] {
			continue
		}
		if project.PresalesStartDate == nil || project.PresalesEndDate == nil {
			continue
		}
		start, end := *project.PresalesStartDate, *project.PresalesEndDate
		if end.Before(start) {
			continue
		}
		rate := project.ResolveHourlyRate(a.defaultRate)
		if rate <= 0 {
			continue
		}

		totalHours := a.presalesDefaultHours
		if project.Type == catalog.ProjectTypeWP && project.Budget != nil && *project.Budget > 0 {
			totalHours = *project.Budget
		}

		totalDays := calendar.WorkingDaysInRange(start, end, country)
		if totalDays == 0 {
			continue
		}
		probCoef := project.ProbabilityCoefficient()

		for cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC); !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
			monthStart, monthEnd := cursor, cursor.AddDate(0, 1, -1)
			if monthStart.Before(start) {
				monthStart = start
			}
			if monthEnd.After(end) {
				monthEnd = end
			}
			monthDays := calendar.WorkingDaysInRange(monthStart, monthEnd, country)
			if monthDays == 0 {
				continue
			}
			monthKey := calendar.FormatMonthKey(cursor.Year(), cursor.Month())
			share := float64(monthDays) / float64(totalDays)
			result.add(monthKey, code, totalHours*share*rate*probCoef)
		}
	}
}

// QuarterKey is "Q<q>_<year>", e.g. "Q4_2025".
type QuarterKey string

// Quarterly rolls monthly revenue up into quarters. Pure sum, no
// separate algorithm.
func (a *Aggregator) Quarterly(monthly MonthlyRevenue) map[QuarterKey]map[string]float64 {
	result := make(map[QuarterKey]map[string]float64)
	for month, projects := range monthly {
		year, quarter, err := calendar.QuarterOf(month)
		if err != nil {
			continue
		}
		key := QuarterKey(formatQuarter(year, quarter))
		if result[key] == nil {
			result[key] = make(map[string]float64)
		}
		for code, amount := range projects {
			result[key][code] += amount
		}
	}
	return result
}

// Annual rolls monthly revenue up per year.
func (a *Aggregator) Annual(monthly MonthlyRevenue) map[int]map[string]float64 {
	result := make(map[int]map[string]float64)
	for month, projects := range monthly {
		year, _, err := calendar.ParseMonthKey(month)
		if err != nil {
			continue
		}
		if result[year] == nil {
			result[year] = make(map[string]float64)
		}
		for code, amount := range projects {
			result[year][code] += amount
		}
	}
	return result
}

func formatQuarter(year, quarter int) string {
	return fmt.Sprintf("Q%d_%d", quarter, year)
}
