package feed

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planboard/capacity-backend-go/internal/domain/assignment"
	"github.com/planboard/capacity-backend-go/internal/pkg/calendar"
)

func rawRow(id, name, week, project string, hours float64, updated time.Time) assignment.RawRow {
	return assignment.RawRow{
		ID:           id,
		EngineerName: name,
		WeekLabel:    week,
		ProjectCode:  project,
		Hours:        hours,
		UpdatedAt:    updated,
	}
}

func TestNormalizeResolvesAndClassifies(t *testing.T) {
	resolver := NewResolver(testEngineers())
	now := time.Now()

	records := Normalize([]assignment.RawRow{
		rawRow("r1", "Jiří Novák", "CW10-2025", "ST_FEM", 40, now),
		rawRow("r2", "Petra Dvořáková", "CW10-2025", "DOVOLENÁ", 40, now),
		rawRow("r3", "Nobody Known", "CW10-2025", "ST_FEM", 40, now), // orphan
		rawRow("r4", "Jiří Novák", "banana", "ST_FEM", 40, now),      // bad label
	}, resolver, nil)

	require.Len(t, records, 2)
	assert.Equal(t, "eng-1", records[0].Key.EngineerID)
	assert.Equal(t, assignment.KindProject, records[0].Kind)
	assert.Equal(t, "ST_FEM", records[0].ProjectCode)
	assert.Equal(t, assignment.KindVacation, records[1].Kind)
	assert.Empty(t, records[1].ProjectCode)
}

func TestNormalizeDedupPrefersNonFree(t *testing.T) {
	resolver := NewResolver(testEngineers())
	older := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	// The FREE row is newer, but the project row still wins.
	records := Normalize([]assignment.RawRow{
		rawRow("r1", "Jiří Novák", "CW10-2025", "FREE", 40, newer),
		rawRow("r2", "Jiří Novák", "CW10-2025", "ST_FEM", 36, older),
	}, resolver, nil)

	require.Len(t, records, 1)
	assert.Equal(t, assignment.KindProject, records[0].Kind)
	assert.Equal(t, 36.0, records[0].Hours)
}

func TestNormalizeDedupLaterUpdateWins(t *testing.T) {
	resolver := NewResolver(testEngineers())
	older := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	records := Normalize([]assignment.RawRow{
		rawRow("r1", "Jiří Novák", "CW10-2025", "ST_FEM", 36, older),
		rawRow("r2", "Jiří Novák", "CW10-2025", "OTHER_PRJ", 20, newer),
	}, resolver, nil)

	require.Len(t, records, 1)
	assert.Equal(t, "OTHER_PRJ", records[0].ProjectCode)
}

func TestNormalizeDeterministicUnderShuffle(t *testing.T) {
	resolver := NewResolver(testEngineers())
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := []assignment.RawRow{
		rawRow("r1", "Jiří Novák", "CW10-2025", "FREE", 40, base.Add(3*time.Hour)),
		rawRow("r2", "Jiří Novák", "CW10-2025", "ST_FEM", 36, base),
		rawRow("r3", "Jiří Novák", "CW10-2025", "OTHER_PRJ", 20, base), // same timestamp as r2
		rawRow("r4", "Petra Dvořáková", "CW11-2025", "NEMOC", 40, base),
		rawRow("r5", "Petra Dvořáková", "CW12-2025", "ST_FEM", 40, base),
	}

	reference := Normalize(rows, resolver, nil)
	require.Len(t, reference, 3)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]assignment.RawRow, len(rows))
		copy(shuffled, rows)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, reference, Normalize(shuffled, resolver, nil), "iteration %d", i)
	}
}

func TestNormalizeOutputSorted(t *testing.T) {
	resolver := NewResolver(testEngineers())
	now := time.Now()

	records := Normalize([]assignment.RawRow{
		rawRow("r1", "Petra Dvořáková", "CW02-2025", "ST_FEM", 40, now),
		rawRow("r2", "Jiří Novák", "CW52-2024", "ST_FEM", 40, now),
		rawRow("r3", "Jiří Novák", "CW01-2025", "ST_FEM", 40, now),
	}, resolver, nil)

	require.Len(t, records, 3)
	assert.Equal(t, assignment.Key{EngineerID: "eng-1", Week: calendar.WeekKey{Week: 52, Year: 2024}}, records[0].Key)
	assert.Equal(t, assignment.Key{EngineerID: "eng-1", Week: calendar.WeekKey{Week: 1, Year: 2025}}, records[1].Key)
	assert.Equal(t, assignment.Key{EngineerID: "eng-2", Week: calendar.WeekKey{Week: 2, Year: 2025}}, records[2].Key)
}
