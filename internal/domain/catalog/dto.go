package catalog

import "time"

type EngineerResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Status      string `json:"status"`
}

func ToEngineerResponse(e Engineer) EngineerResponse {
	return EngineerResponse{
		ID:          e.ID,
		DisplayName: e.DisplayName,
		Status:      string(e.Status),
	}
}

type ProjectResponse struct {
	ID                string     `json:"id"`
	Code              string     `json:"code"`
	Name              string     `json:"name"`
	CustomerID        *string    `json:"customer_id,omitempty"`
	ProgramID         *string    `json:"program_id,omitempty"`
	ProjectManagerID  *string    `json:"project_manager_id,omitempty"`
	Type              string     `json:"type"`
	AverageHourlyRate *float64   `json:"average_hourly_rate,omitempty"`
	Budget            *float64   `json:"budget,omitempty"`
	Status            string     `json:"status"`
	Probability       int        `json:"probability"`
	PresalesPhase     string     `json:"presales_phase,omitempty"`
	PresalesStartDate *time.Time `json:"presales_start_date,omitempty"`
	PresalesEndDate   *time.Time `json:"presales_end_date,omitempty"`
}

func ToProjectResponse(p Project) ProjectResponse {
	return ProjectResponse{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		CustomerID:        p.CustomerID,
		ProgramID:         p.ProgramID,
		ProjectManagerID:  p.ProjectManagerID,
		Type:              string(p.Type),
		AverageHourlyRate: p.AverageHourlyRate,
		Budget:            p.Budget,
		Status:            string(p.Status),
		Probability:       p.Probability,
		PresalesPhase:     p.PresalesPhase,
		PresalesStartDate: p.PresalesStartDate,
		PresalesEndDate:   p.PresalesEndDate,
	}
}

type LicenseResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Provider       string     `json:"provider,omitempty"`
	TotalSeats     int        `json:"total_seats"`
	Cost           *float64   `json:"cost,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Status         string     `json:"status"`
}

func ToLicenseResponse(l License, now time.Time) LicenseResponse {
	return LicenseResponse{
		ID:             l.ID,
		Name:           l.Name,
		Provider:       l.Provider,
		TotalSeats:     l.TotalSeats,
		Cost:           l.Cost,
		ExpirationDate: l.ExpirationDate,
		Status:         string(l.Status(now)),
	}
}

type CustomerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProgramResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
