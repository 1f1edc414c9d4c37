package calendar

import "time"

// Country selects which public-holiday calendar applies.
type Country string

const (
	CountryCzech  Country = "CZ"
	CountrySlovak Country = "SK"
)

var CountryValues = []string{
	string(CountryCzech),
	string(CountrySlovak),
}

type monthDay struct {
	Month time.Month
	Day   int
}

// Fixed-date public holidays. Easter-derived holidays are added in
// holidaysInYear.
var czechFixedHolidays = []monthDay{
	{time.January, 1},
	{time.May, 1},
	{time.May, 8},
	{time.July, 5},
	{time.July, 6},
	{time.September, 28},
	{time.October, 28},
	{time.November, 17},
	{time.December, 24},
	{time.December, 25},
	{time.December, 26},
}

var slovakFixedHolidays = []monthDay{
	{time.January, 1},
	{time.January, 6},
	{time.May, 1},
	{time.May, 8},
	{time.July, 5},
	{time.August, 29},
	{time.September, 1},
	{time.September, 15},
	{time.November, 1},
	{time.November, 17},
	{time.December, 24},
	{time.December, 25},
	{time.December, 26},
}

// easterSunday computes Easter Sunday for a year using the anonymous
// Gregorian computus (Meeus/Jones/Butcher).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func holidaysInYear(year int, country Country) []time.Time {
	fixed := czechFixedHolidays
	if country == CountrySlovak {
		fixed = slovakFixedHolidays
	}

	holidays := make([]time.Time, 0, len(fixed)+2)
	for _, h := range fixed {
		holidays = append(holidays, time.Date(year, h.Month, h.Day, 0, 0, 0, 0, time.UTC))
	}

	// Good Friday and Easter Monday are public holidays in both variants.
	easter := easterSunday(year)
	holidays = append(holidays, easter.AddDate(0, 0, -2), easter.AddDate(0, 0, 1))
	return holidays
}

// HolidaysInMonth returns the public holidays of a month.
func HolidaysInMonth(year int, month time.Month, country Country) []time.Time {
	var result []time.Time
	for _, h := range holidaysInYear(year, country) {
		if h.Month() == month {
			result = append(result, h)
		}
	}
	return result
}

// IsHoliday reports whether the date is a public holiday.
func IsHoliday(date time.Time, country Country) bool {
	for _, h := range holidaysInYear(date.Year(), country) {
		if h.Month() == date.Month() && h.Day() == date.Day() {
			return true
		}
	}
	return false
}
