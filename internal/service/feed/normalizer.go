package feed

import (
	"log/slog"
	"sort"

	"github.com/planboard/capacity-backend-go/internal/domain/assignment"
	"github.com/planboard/capacity-backend-go/internal/pkg/calendar"
)

// Normalize converts raw assignment rows into the deduplicated feed the
// aggregators read. The result is deterministic: the same multiset of
// rows yields the same output regardless of input order.
//
// Rows that cannot be placed (bad week label, unresolvable engineer) are
// excluded and reported to the data-quality log, never returned as
// errors.
func Normalize(rows []assignment.RawRow, resolver *Resolver, logger *slog.Logger) []assignment.Record {
	if logger == nil {
		logger = slog.Default()
	}

	records := make(map[assignment.Key]assignment.Record, len(rows))
	tieIDs := make(map[assignment.Key]string, len(rows))
	orphans := 0

	for _, row := range rows {
		week, err := calendar.ParseWeekLabel(row.WeekLabel)
		if err != nil {
			logger.Warn("data quality: skipping row with invalid week label",
				"row_id", row.ID, "week_label", row.WeekLabel)
			continue
		}
		if row.Year != 0 && row.Year != week.Year {
			// The redundant year column disagrees with the label; the
			// label is authoritative.
			logger.Warn("data quality: week label and year column disagree",
				"row_id", row.ID, "week_label", row.WeekLabel, "year", row.Year)
		}

		engineer, ok := resolver.Resolve(row)
		if !ok {
			orphans++
			logger.Warn("data quality: orphan assignment row",
				"row_id", row.ID, "engineer_name", row.EngineerName,
				"week", week.Label(), "reason", assignment.ErrUnresolvedEngineer.Error())
			continue
		}

		kind := assignment.ParseKind(row.ProjectCode)
		candidate := assignment.Record{
			Key:       assignment.Key{EngineerID: engineer.ID, Week: week},
			Kind:      kind,
			Hours:     row.Hours,
			Tentative: row.Tentative,
			UpdatedAt: row.UpdatedAt,
		}
		if kind == assignment.KindProject {
			candidate.ProjectCode = row.ProjectCode
		}

		existing, collision := records[candidate.Key]
		if !collision || wins(candidate, row.ID, existing, tieIDs[candidate.Key]) {
			records[candidate.Key] = candidate
			tieIDs[candidate.Key] = row.ID
		}
	}

	if orphans > 0 {
		logger.Warn("data quality: orphan rows excluded from feed", "count", orphans)
	}

	out := make([]assignment.Record, 0, len(records))
	for _, rec := range records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key, out[j].Key
		if a.EngineerID != b.EngineerID {
			return a.EngineerID < b.EngineerID
		}
		if a.Week != b.Week {
			return a.Week.Before(b.Week)
		}
		return false
	})
	return out
}

// wins decides a key collision. A non-free assignment beats a free one;
// after that the later update wins; equal timestamps fall back to the
// row id so the outcome never depends on input order.
func wins(candidate assignment.Record, candidateID string, existing assignment.Record, existingID string) bool {
	candFree := candidate.Kind.CountsAsFree()
	exFree := existing.Kind.CountsAsFree()
	if candFree != exFree {
		return exFree
	}
	if !candidate.UpdatedAt.Equal(existing.UpdatedAt) {
		return candidate.UpdatedAt.After(existing.UpdatedAt)
	}
	return candidateID > existingID
}
