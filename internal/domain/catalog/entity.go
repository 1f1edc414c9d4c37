package catalog

import "time"

type Engineer struct {
	ID          string
	DisplayName string
	Status      EngineerStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type EngineerStatus string

const (
	EngineerStatusActive     EngineerStatus = "active"
	EngineerStatusInactive   EngineerStatus = "inactive"
	EngineerStatusContractor EngineerStatus = "contractor"
	EngineerStatusOnLeave    EngineerStatus = "on_leave"
)

var EngineerStatusValues = []string{
	string(EngineerStatusActive),
	string(EngineerStatusInactive),
	string(EngineerStatusContractor),
	string(EngineerStatusOnLeave),
}

type Project struct {
	ID                string
	Code              string // unique, human-meaningful
	Name              string
	CustomerID        *string
	ProgramID         *string
	ProjectManagerID  *string
	Type              ProjectType
	AverageHourlyRate *float64
	Budget            *float64
	Status            ProjectStatus
	Probability       int // 0-100, meaningful only for presales
	PresalesPhase     string
	PresalesStartDate *time.Time
	PresalesEndDate   *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ProjectType string

const (
	// ProjectTypeWP is a fixed-price hour-package project.
	ProjectTypeWP ProjectType = "WP"
	// ProjectTypeHodinovka is billed time-and-materials.
	ProjectTypeHodinovka ProjectType = "Hodinovka"
)

var ProjectTypeValues = []string{
	string(ProjectTypeWP),
	string(ProjectTypeHodinovka),
}

type ProjectStatus string

const (
	ProjectStatusRealizace ProjectStatus = "Realizace"
	ProjectStatusPresales  ProjectStatus = "Pre sales"
)

var ProjectStatusValues = []string{
	string(ProjectStatusRealizace),
	string(ProjectStatusPresales),
}

// IsPresales reports whether revenue from this project is
// probability-weighted.
func (p Project) IsPresales() bool {
	return p.Status == ProjectStatusPresales
}

// ProbabilityCoefficient is 1.0 for contracted projects and
// probability/100 for presales.
func (p Project) ProbabilityCoefficient() float64 {
	if !p.IsPresales() {
		return 1.0
	}
	return float64(p.Probability) / 100.0
}

// ResolveHourlyRate resolves the billing rate used for revenue. WP
// projects bill at their average hourly rate only. Hodinovka projects
// fall back to the budget field, then to the configured default. A zero
// return means the project contributes no revenue.
func (p Project) ResolveHourlyRate(defaultRate float64) float64 {
	switch p.Type {
	case ProjectTypeWP:
		if p.AverageHourlyRate != nil && *p.AverageHourlyRate > 0 {
			return *p.AverageHourlyRate
		}
		return 0
	case ProjectTypeHodinovka:
		if p.AverageHourlyRate != nil && *p.AverageHourlyRate > 0 {
			return *p.AverageHourlyRate
		}
		if p.Budget != nil && *p.Budget > 0 {
			return *p.Budget
		}
		return defaultRate
	default:
		return 0
	}
}

type Customer struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Program struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProjectManager struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type License struct {
	ID             string
	Name           string
	Provider       string
	TotalSeats     int
	Cost           *float64
	ExpirationDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type LicenseStatus string

const (
	LicenseStatusActive       LicenseStatus = "active"
	LicenseStatusExpiringSoon LicenseStatus = "expiring_soon"
	LicenseStatusExpired      LicenseStatus = "expired"
)

// Status derives the license state from its expiration date as of now.
// Licenses expiring within 30 days are flagged expiring_soon.
func (l License) Status(now time.Time) LicenseStatus {
	if l.ExpirationDate == nil {
		return LicenseStatusActive
	}
	if l.ExpirationDate.Before(now) {
		return LicenseStatusExpired
	}
	if l.ExpirationDate.Sub(now) <= 30*24*time.Hour {
		return LicenseStatusExpiringSoon
	}
	return LicenseStatusActive
}

// ProjectLicenseLink states that each engineer assigned to the project
// consumes Percentage% of one seat of the license.
type ProjectLicenseLink struct {
	ID         string
	ProjectID  string
	LicenseID  string
	Percentage int // 0-100
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
