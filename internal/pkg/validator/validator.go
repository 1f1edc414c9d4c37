package validator

import (
	"strings"

	"github.com/planboard/capacity-backend-go/internal/pkg/calendar"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Week label validation ("CW<NN>-<YYYY>"). Delegates to the calendar
// parser so format and week-range rules live in one place.
func IsValidWeekLabel(label string) bool {
	_, err := calendar.ParseWeekLabel(label)
	return err == nil
}

// Weekly hours validation. A planning cell holds between 0 and 80 hours.
func IsValidWeeklyHours(hours float64) bool {
	return hours >= 0 && hours <= 80
}
