package license

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/planboard/capacity-backend-go/internal/pkg/calendar"
	"github.com/planboard/capacity-backend-go/internal/service/feed"
)

// ProjectSeats is the per-project line of the human-readable breakdown:
// ceil(uniqueEngineers * percentage / 100) seats. The breakdown figures
// are display-only and are never summed into the seat total.
type ProjectSeats struct {
	ProjectCode string `json:"project_code"`
	Engineers   int    `json:"engineers"`
	Seats       int    `json:"seats"`
}

// Demand is the seat requirement of one license in one week.
type Demand struct {
	LicenseID     string         `json:"license_id"`
	LicenseName   string         `json:"license_name"`
	RequiredSeats int            `json:"required_seats"`
	TotalSeats    int            `json:"total_seats"`
	OverAllocated bool           `json:"over_allocated"`
	Breakdown     []ProjectSeats `json:"breakdown"`
}

// Summary formats the breakdown the way the planning grid shows it,
// e.g. "ST_FEM (2), OTHER (1)".
func (d Demand) Summary() string {
	s := ""
	for i, b := range d.Breakdown {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s (%d)", b.ProjectCode, b.Seats)
	}
	return s
}

// Aggregator derives weekly license seat demand from the feed.
type Aggregator struct {
	excludedSuppliers map[string]bool
	logger            *slog.Logger
}

// NewAggregator takes the names of supplier-sourced engineers who work
// on their own licenses and never consume internal seats. Names are
// matched through the same normalization as the identity resolver.
func NewAggregator(excludedSuppliers []string, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	excluded := make(map[string]bool, len(excludedSuppliers))
	for _, name := range excludedSuppliers {
		excluded[feed.NormalizeName(name)] = true
	}
	return &Aggregator{excludedSuppliers: excluded, logger: logger}
}

// WeeklyDemand computes, for one week, the seats each license requires.
//
// An engineer who needs a license via any of their projects counts once
// toward the seat total, even when several projects contribute
// fractional requirements for the same license.
func (a *Aggregator) WeeklyDemand(snap feed.Snapshot, week calendar.WeekKey) map[string]Demand {
	// Unique engineers per project for the week.
	engineersByProject := make(map[string]map[string]bool)
	for _, rec := range snap.Records {
		if rec.Key.Week != week {
			continue
		}
		if !rec.Kind.ConsumesLicense() || rec.Hours <= 0 {
			continue
		}
		if a.isExcluded(snap, rec.Key.EngineerID) {
			continue
		}
		if engineersByProject[rec.ProjectCode] == nil {
			engineersByProject[rec.ProjectCode] = make(map[string]bool)
		}
		engineersByProject[rec.ProjectCode][rec.Key.EngineerID] = true
	}

	linksByLicense := make(map[string][]int)
	for i, link := range snap.Links {
		linksByLicense[link.LicenseID] = append(linksByLicense[link.LicenseID], i)
	}

	codeByProjectID := make(map[string]string, len(snap.Projects))
	for code, p := range snap.Projects {
		codeByProjectID[p.ID] = code
	}

	result := make(map[string]Demand, len(snap.Licenses))
	for _, lic := range snap.Licenses {
		demand := Demand{
			LicenseID:   lic.ID,
			LicenseName: lic.Name,
			TotalSeats:  lic.TotalSeats,
		}

		uniqueEngineers := make(map[string]bool)
		for _, i := range linksByLicense[lic.ID] {
			link := snap.Links[i]
			project := codeByProjectID[link.ProjectID]
			engineers := engineersByProject[project]
			if len(engineers) == 0 || link.Percentage <= 0 {
				continue
			}
			demand.Breakdown = append(demand.Breakdown, ProjectSeats{
				ProjectCode: project,
				Engineers:   len(engineers),
				Seats:       ceilDiv(len(engineers)*link.Percentage, 100),
			})
			for id := range engineers {
				uniqueEngineers[id] = true
			}
		}
		sort.Slice(demand.Breakdown, func(i, j int) bool {
			return demand.Breakdown[i].ProjectCode < demand.Breakdown[j].ProjectCode
		})

		demand.RequiredSeats = len(uniqueEngineers)
		// Over-allocation is a warning indicator, never an error.
		demand.OverAllocated = demand.RequiredSeats > lic.TotalSeats
		result[lic.Name] = demand
	}
	return result
}

func (a *Aggregator) isExcluded(snap feed.Snapshot, engineerID string) bool {
	if len(a.excludedSuppliers) == 0 {
		return false
	}
	engineer, ok := snap.Engineers[engineerID]
	if !ok {
		return false
	}
	return a.excludedSuppliers[feed.NormalizeName(engineer.DisplayName)]
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
