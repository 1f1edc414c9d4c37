package assignment

import (
	"strings"
	"time"

	"github.com/planboard/capacity-backend-go/internal/pkg/calendar"
)

// Kind is the closed set of things a planning cell can hold. The
// planning sheets encode the non-project states as reserved pseudo
// project codes; parsing maps them onto this variant once so that the
// aggregators never compare raw strings.
type Kind string

const (
	KindProject  Kind = "project"
	KindFree     Kind = "free"
	KindVacation Kind = "vacation"
	KindSick     Kind = "sick"
	KindOverhead Kind = "overhead"
)

// Reserved pseudo-codes as they appear in the sheets. Matching is
// case-insensitive and tolerates missing diacritics; training and
// internal work are booked as overhead.
var pseudoCodes = map[string]Kind{
	"FREE":     KindFree,
	"DOVOLENÁ": KindVacation,
	"DOVOLENA": KindVacation,
	"NEMOC":    KindSick,
	"OVER":     KindOverhead,
	"ŠKOLENÍ":  KindOverhead,
	"SKOLENI":  KindOverhead,
	"INTERNAL": KindOverhead,
}

// ParseKind classifies a raw project-code cell. Empty cells mean the
// engineer is free; anything that is not a reserved pseudo-code is a
// real project assignment.
func ParseKind(code string) Kind {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return KindFree
	}
	if kind, ok := pseudoCodes[trimmed]; ok {
		return kind
	}
	return KindProject
}

// CountsAsFree reports whether the kind leaves the engineer available
// for planning purposes.
func (k Kind) CountsAsFree() bool {
	return k == KindFree
}

// EarnsRevenue reports whether assignments of this kind are candidates
// for revenue aggregation. Only real project work bills.
func (k Kind) EarnsRevenue() bool {
	return k == KindProject
}

// ConsumesLicense reports whether assignments of this kind can create
// license seat demand.
func (k Kind) ConsumesLicense() bool {
	return k == KindProject
}

// RawRow is an assignment row as fetched from the store, before
// identity resolution and deduplication.
type RawRow struct {
	ID           string
	EngineerID   *string // nullable: legacy rows carry only a name
	EngineerName string
	WeekLabel    string // "CW<NN>-<YYYY>"
	Year         int
	ProjectCode  string
	Hours        float64
	Tentative    bool
	UpdatedAt    time.Time
}

// Key identifies the single planning cell a record occupies.
type Key struct {
	EngineerID string
	Week       calendar.WeekKey
}

// Record is a normalized assignment: engineer identity resolved, week
// parsed, pseudo-codes classified. At most one Record exists per Key.
type Record struct {
	Key         Key
	Kind        Kind
	ProjectCode string // set only when Kind == KindProject
	Hours       float64
	Tentative   bool
	UpdatedAt   time.Time
}
