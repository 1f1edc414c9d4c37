package response

import (
	"errors"
	"net/http"

	"github.com/planboard/capacity-backend-go/internal/domain/assignment"
	"github.com/planboard/capacity-backend-go/internal/domain/catalog"
	"github.com/planboard/capacity-backend-go/internal/pkg/jwt"
	"github.com/planboard/capacity-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Catalog domain errors
	case errors.Is(err, catalog.ErrEngineerNotFound):
		NotFound(w, "Engineer not found")
	case errors.Is(err, catalog.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, catalog.ErrLicenseNotFound):
		NotFound(w, "License not found")
	case errors.Is(err, catalog.ErrProjectCodeExists):
		Conflict(w, "Project with this code already exists")

	// Assignment domain errors
	case errors.Is(err, assignment.ErrRowNotFound):
		NotFound(w, "Assignment row not found")
	case errors.Is(err, assignment.ErrInvalidWeekLabel):
		BadRequest(w, "Week label must match CW<NN>-<YYYY>", nil)
	case errors.Is(err, assignment.ErrInvalidHours):
		BadRequest(w, "Weekly hours must be between 0 and 80", nil)

	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
