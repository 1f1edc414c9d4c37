package assignment

import (
	"errors"
	"fmt"
	"time"

	"github.com/planboard/capacity-backend-go/internal/pkg/validator"
)

// UpsertAssignmentRequest is a planner edit of a single grid cell.
type UpsertAssignmentRequest struct {
	EngineerID  string  `json:"engineer_id"`
	WeekLabel   string  `json:"week_label"`
	ProjectCode string  `json:"project_code"`
	Hours       float64 `json:"hours"`
	Tentative   bool    `json:"tentative"`
}

func (r UpsertAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EngineerID) {
		errs = append(errs, validator.ValidationError{Field: "engineer_id", Message: "engineer_id is required"})
	}
	if !validator.IsValidWeekLabel(r.WeekLabel) {
		errs = append(errs, validator.ValidationError{Field: "week_label", Message: "week_label must match CW<NN>-<YYYY>"})
	}
	if validator.IsEmpty(r.ProjectCode) {
		errs = append(errs, validator.ValidationError{Field: "project_code", Message: "project_code is required"})
	}
	if !validator.IsValidWeeklyHours(r.Hours) {
		errs = append(errs, validator.ValidationError{Field: "hours", Message: "hours must be between 0 and 80"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkUpsertAssignmentRequest carries a multi-cell planner edit, such
// as pasting one engineer's row across several weeks.
type BulkUpsertAssignmentRequest struct {
	Assignments []UpsertAssignmentRequest `json:"assignments"`
}

func (r BulkUpsertAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Assignments) == 0 {
		errs = append(errs, validator.ValidationError{Field: "assignments", Message: "assignments must not be empty"})
	}
	for i, a := range r.Assignments {
		if err := a.Validate(); err != nil {
			var inner validator.ValidationErrors
			if errors.As(err, &inner) {
				for _, e := range inner {
					errs = append(errs, validator.ValidationError{
						Field:   fmt.Sprintf("assignments[%d].%s", i, e.Field),
						Message: e.Message,
					})
				}
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignmentResponse struct {
	ID          string    `json:"id"`
	EngineerID  string    `json:"engineer_id,omitempty"`
	WeekLabel   string    `json:"week_label"`
	ProjectCode string    `json:"project_code"`
	Hours       float64   `json:"hours"`
	Tentative   bool      `json:"tentative"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToAssignmentResponse(row RawRow) AssignmentResponse {
	resp := AssignmentResponse{
		ID:          row.ID,
		WeekLabel:   row.WeekLabel,
		ProjectCode: row.ProjectCode,
		Hours:       row.Hours,
		Tentative:   row.Tentative,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.EngineerID != nil {
		resp.EngineerID = *row.EngineerID
	}
	return resp
}

// RecordResponse is the normalized view served to the planning grid.
type RecordResponse struct {
	EngineerID  string    `json:"engineer_id"`
	WeekLabel   string    `json:"week_label"`
	Kind        string    `json:"kind"`
	ProjectCode string    `json:"project_code,omitempty"`
	Hours       float64   `json:"hours"`
	Tentative   bool      `json:"tentative"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToRecordResponse(rec Record) RecordResponse {
	return RecordResponse{
		EngineerID:  rec.Key.EngineerID,
		WeekLabel:   rec.Key.Week.Label(),
		Kind:        string(rec.Kind),
		ProjectCode: rec.ProjectCode,
		Hours:       rec.Hours,
		Tentative:   rec.Tentative,
		UpdatedAt:   rec.UpdatedAt,
	}
}
