package calendar

import "time"

// MonthShare is one month's portion of a planning week. Ratio is the
// fraction of the week's 5 weekdays that fall inside the month; the
// shares of a week always sum to 1.0.
type MonthShare struct {
	MonthKey MonthKey
	Ratio    float64
}

// Mapper resolves planning weeks to their month shares. The share table
// is generated from actual weekday overlap at construction time for the
// configured horizon, so extending the horizon is a config change rather
// than a table edit.
type Mapper struct {
	startYear int
	endYear   int
	shares    map[WeekKey][]MonthShare
}

// NewMapper generates the week-to-month table for all ISO weeks whose
// year falls inside [startYear, endYear].
func NewMapper(startYear, endYear int) *Mapper {
	m := &Mapper{
		startYear: startYear,
		endYear:   endYear,
		shares:    make(map[WeekKey][]MonthShare),
	}
	for year := startYear; year <= endYear; year++ {
		for week := 1; week <= WeeksInYear(year); week++ {
			key := WeekKey{Week: week, Year: year}
			m.shares[key] = computeShares(key)
		}
	}
	return m
}

func computeShares(key WeekKey) []MonthShare {
	monday := MondayOf(key)

	// Count the week's weekdays per (year, month). A week spans at most
	// two months.
	type ym struct {
		year  int
		month time.Month
	}
	counts := make(map[ym]int, 2)
	order := make([]ym, 0, 2)
	for i := 0; i < 5; i++ {
		d := monday.AddDate(0, 0, i)
		k := ym{year: d.Year(), month: d.Month()}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	shares := make([]MonthShare, 0, len(order))
	for _, k := range order {
		shares = append(shares, MonthShare{
			MonthKey: FormatMonthKey(k.year, k.month),
			Ratio:    float64(counts[k]) / 5.0,
		})
	}
	return shares
}

// MonthShares returns the month shares of a week, or nil for weeks
// outside the configured horizon. Unmapped weeks are excluded from
// aggregation, never an error.
func (m *Mapper) MonthShares(key WeekKey) []MonthShare {
	return m.shares[key]
}

// InHorizon reports whether the week is covered by the generated table.
func (m *Mapper) InHorizon(key WeekKey) bool {
	_, ok := m.shares[key]
	return ok
}

// HorizonYears returns the inclusive year range the table covers.
func (m *Mapper) HorizonYears() (int, int) {
	return m.startYear, m.endYear
}
