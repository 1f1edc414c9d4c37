package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// WeekKey identifies a planning week: ISO week number plus year.
type WeekKey struct {
	Week int
	Year int
}

var weekLabelRegex = regexp.MustCompile(`^CW(\d{1,2})-(\d{4})$`)

// ParseWeekLabel parses a "CW<NN>-<YYYY>" label into a WeekKey.
func ParseWeekLabel(label string) (WeekKey, error) {
	m := weekLabelRegex.FindStringSubmatch(label)
	if m == nil {
		return WeekKey{}, fmt.Errorf("invalid week label %q, expected CW<NN>-<YYYY>", label)
	}
	week, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if week < 1 || week > WeeksInYear(year) {
		return WeekKey{}, fmt.Errorf("week %d out of range for year %d", week, year)
	}
	return WeekKey{Week: week, Year: year}, nil
}

// Label formats the key back to its "CW<NN>-<YYYY>" form.
func (k WeekKey) Label() string {
	return fmt.Sprintf("CW%02d-%d", k.Week, k.Year)
}

// Before reports whether k is chronologically before other.
func (k WeekKey) Before(other WeekKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Week < other.Week
}

// Next returns the following week, rolling into the next year after the
// last ISO week.
func (k WeekKey) Next() WeekKey {
	if k.Week >= WeeksInYear(k.Year) {
		return WeekKey{Week: 1, Year: k.Year + 1}
	}
	return WeekKey{Week: k.Week + 1, Year: k.Year}
}

// CurrentWeek returns the ISO week containing today.
func CurrentWeek() WeekKey {
	year, week := time.Now().ISOWeek()
	return WeekKey{Week: week, Year: year}
}

// MondayOf returns the Monday of the given ISO week.
func MondayOf(key WeekKey) time.Time {
	// January 4th is always in ISO week 1.
	jan4 := time.Date(key.Year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	week1Monday := jan4.AddDate(0, 0, -(weekday - 1))
	return week1Monday.AddDate(0, 0, (key.Week-1)*7)
}

// WeeksInYear returns the number of ISO weeks in the year (52 or 53).
func WeeksInYear(year int) int {
	isLeap := func(y int) bool {
		return y%4 == 0 && (y%100 != 0 || y%400 == 0)
	}
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Weekday()
	if jan1 == time.Thursday || (isLeap(year) && jan1 == time.Wednesday) {
		return 53
	}
	return 52
}

// WeekRange enumerates all weeks from from to to inclusive. An inverted
// range yields an empty slice.
func WeekRange(from, to WeekKey) []WeekKey {
	var weeks []WeekKey
	for k := from; !to.Before(k); k = k.Next() {
		weeks = append(weeks, k)
	}
	return weeks
}
