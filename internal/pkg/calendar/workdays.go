package calendar

import "time"

func isWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// BaseWorkingDays counts the weekdays (Mon-Fri) of a month, before any
// holiday reduction.
func BaseWorkingDays(year int, month time.Month) int {
	count := 0
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if isWeekday(d) {
			count++
		}
	}
	return count
}

// WorkingDays counts the weekdays of a month minus public holidays that
// land on a weekday.
func WorkingDays(year int, month time.Month, country Country) int {
	count := BaseWorkingDays(year, month)
	for _, h := range HolidaysInMonth(year, month, country) {
		if isWeekday(h) {
			count--
		}
	}
	return count
}

// HolidayCoefficient is the fraction of a month's baseline working days
// that remain after holidays. 1.0 means no weekday holidays.
func HolidayCoefficient(key MonthKey, country Country) float64 {
	year, month, err := ParseMonthKey(key)
	if err != nil {
		return 1.0
	}
	base := BaseWorkingDays(year, month)
	if base == 0 {
		return 1.0
	}
	return float64(WorkingDays(year, month, country)) / float64(base)
}

// WorkingDaysInRange counts holiday-free weekdays in the inclusive date
// range, truncated to day precision.
func WorkingDaysInRange(from, to time.Time, country Country) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if isWeekday(d) && !IsHoliday(d, country) {
			count++
		}
	}
	return count
}

// WeekdaysInMonth counts how many of a week's 5 weekdays fall within the
// target month, given the week's Monday.
func WeekdaysInMonth(monday time.Time, year int, month time.Month) int {
	count := 0
	for i := 0; i < 5; i++ {
		d := monday.AddDate(0, 0, i)
		if d.Year() == year && d.Month() == month {
			count++
		}
	}
	return count
}
