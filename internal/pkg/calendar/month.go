package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Month keys use the Czech month names the planning sheets are labeled
// with, e.g. "říjen_2025".
var czechMonthNames = [13]string{
	"", // 1-indexed
	"leden", "únor", "březen", "duben", "květen", "červen",
	"červenec", "srpen", "září", "říjen", "listopad", "prosinec",
}

// MonthKey identifies a calendar month in the "<name>_<year>" form.
type MonthKey string

// FormatMonthKey builds the key for a month of a year.
func FormatMonthKey(year int, month time.Month) MonthKey {
	return MonthKey(fmt.Sprintf("%s_%d", czechMonthNames[int(month)], year))
}

// ParseMonthKey splits a month key back into year and month.
func ParseMonthKey(key MonthKey) (int, time.Month, error) {
	idx := strings.LastIndex(string(key), "_")
	if idx < 0 {
		return 0, 0, fmt.Errorf("invalid month key %q", key)
	}
	name := string(key)[:idx]
	year, err := strconv.Atoi(string(key)[idx+1:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	for m := 1; m <= 12; m++ {
		if czechMonthNames[m] == name {
			return year, time.Month(m), nil
		}
	}
	return 0, 0, fmt.Errorf("unknown month name %q in key %q", name, key)
}

// QuarterOf returns the 1-based quarter of a month key.
func QuarterOf(key MonthKey) (year int, quarter int, err error) {
	y, m, err := ParseMonthKey(key)
	if err != nil {
		return 0, 0, err
	}
	return y, (int(m)-1)/3 + 1, nil
}

// MonthsOfQuarter lists the three month keys of a quarter.
func MonthsOfQuarter(year, quarter int) []MonthKey {
	keys := make([]MonthKey, 0, 3)
	for i := 0; i < 3; i++ {
		keys = append(keys, FormatMonthKey(year, time.Month((quarter-1)*3+i+1)))
	}
	return keys
}

// MonthsOfYear lists all twelve month keys of a year.
func MonthsOfYear(year int) []MonthKey {
	keys := make([]MonthKey, 0, 12)
	for m := 1; m <= 12; m++ {
		keys = append(keys, FormatMonthKey(year, time.Month(m)))
	}
	return keys
}
