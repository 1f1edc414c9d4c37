package capacity

import (
	"github.com/planboard/capacity-backend-go/internal/domain/assignment"
	"github.com/planboard/capacity-backend-go/internal/domain/catalog"
	"github.com/planboard/capacity-backend-go/internal/pkg/calendar"
	"github.com/planboard/capacity-backend-go/internal/service/feed"
)

// Display labels for the capacity summary.
const (
	LabelMostlyFree    = "mostly free"
	LabelPartiallyFree = "partially free"
	LabelFullyBooked   = "fully booked"
	LabelOnLeave       = "on leave"
)

// dominantWindow is the number of leading weeks the dominant-project
// heuristic inspects, regardless of the period length. Preserved from
// the original planning sheets.
const dominantWindow = 4

// EngineerCapacity summarizes one engineer over a week range.
type EngineerCapacity struct {
	EngineerID     string  `json:"engineer_id"`
	EngineerName   string  `json:"engineer_name"`
	FreeWeeks      int     `json:"free_weeks"`
	BusyWeeks      int     `json:"busy_weeks"`
	FreePercentage float64 `json:"free_percentage"`
	// DominantLabel is either the project code the engineer mostly works
	// on, or a free/partial/full fallback. Display-only.
	DominantLabel string `json:"dominant_label"`
}

// Classifier derives capacity views from the feed. Pure and
// synchronous.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// kindForWeek resolves what an engineer is doing in a week. A missing
// record means free, except the year-end shutdown week 52, which
// defaults to vacation.
func kindForWeek(index map[assignment.Key]assignment.Record, engineerID string, week calendar.WeekKey) (assignment.Record, assignment.Kind) {
	rec, ok := index[assignment.Key{EngineerID: engineerID, Week: week}]
	if !ok {
		if week.Week == 52 {
			return assignment.Record{}, assignment.KindVacation
		}
		return assignment.Record{}, assignment.KindFree
	}
	return rec, rec.Kind
}

// Classify computes per-engineer capacity over the inclusive week range.
func (c *Classifier) Classify(snap feed.Snapshot, from, to calendar.WeekKey) map[string]EngineerCapacity {
	weeks := calendar.WeekRange(from, to)
	index := make(map[assignment.Key]assignment.Record, len(snap.Records))
	for _, rec := range snap.Records {
		index[rec.Key] = rec
	}

	result := make(map[string]EngineerCapacity, len(snap.Engineers))
	for id, engineer := range snap.Engineers {
		summary := EngineerCapacity{EngineerID: id, EngineerName: engineer.DisplayName}

		for _, week := range weeks {
			_, kind := kindForWeek(index, id, week)
			if kind.CountsAsFree() {
				summary.FreeWeeks++
			} else {
				summary.BusyWeeks++
			}
		}
		if total := len(weeks); total > 0 {
			summary.FreePercentage = float64(summary.FreeWeeks) / float64(total) * 100
		}
		summary.DominantLabel = c.dominantLabel(index, engineer, weeks)

		result[id] = summary
	}
	return result
}

// dominantLabel inspects the first 4 weeks of the period: the most
// frequent real project wins when it appears at least twice (ties broken
// by first encounter); otherwise the label falls back to a tri-state
// based on how many of those weeks are free.
func (c *Classifier) dominantLabel(index map[assignment.Key]assignment.Record, engineer catalog.Engineer, weeks []calendar.WeekKey) string {
	if engineer.Status == catalog.EngineerStatusOnLeave {
		return LabelOnLeave
	}

	window := weeks
	if len(window) > dominantWindow {
		window = window[:dominantWindow]
	}

	counts := make(map[string]int)
	var order []string
	freeWeeks := 0
	for _, week := range window {
		rec, kind := kindForWeek(index, engineer.ID, week)
		if kind.CountsAsFree() {
			freeWeeks++
			continue
		}
		if kind != assignment.KindProject {
			continue
		}
		if counts[rec.ProjectCode] == 0 {
			order = append(order, rec.ProjectCode)
		}
		counts[rec.ProjectCode]++
	}

	best, bestCount := "", 0
	for _, code := range order {
		if counts[code] > bestCount {
			best, bestCount = code, counts[code]
		}
	}
	if bestCount >= 2 {
		return best
	}

	switch {
	case freeWeeks >= 3:
		return LabelMostlyFree
	case freeWeeks >= 1:
		return LabelPartiallyFree
	default:
		return LabelFullyBooked
	}
}

// FreeByWeek counts how many engineers are free in each week of the
// range: the aggregate free-capacity statistic the dashboard chart
// plots.
func (c *Classifier) FreeByWeek(snap feed.Snapshot, from, to calendar.WeekKey) map[calendar.WeekKey]int {
	weeks := calendar.WeekRange(from, to)
	index := make(map[assignment.Key]assignment.Record, len(snap.Records))
	for _, rec := range snap.Records {
		index[rec.Key] = rec
	}

	result := make(map[calendar.WeekKey]int, len(weeks))
	for _, week := range weeks {
		for id := range snap.Engineers {
			if _, kind := kindForWeek(index, id, week); kind.CountsAsFree() {
				result[week]++
			}
		}
	}
	return result
}
