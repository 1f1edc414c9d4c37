package catalog

import "errors"

var (
	// Engineer errors
	ErrEngineerNotFound = errors.New("engineer not found")

	// Project errors
	ErrProjectNotFound   = errors.New("project not found")
	ErrProjectCodeExists = errors.New("project with this code already exists")

	// License errors
	ErrLicenseNotFound     = errors.New("license not found")
	ErrLicenseLinkNotFound = errors.New("project license link not found")
	ErrInvalidPercentage   = errors.New("license link percentage must be between 0 and 100")

	// Validation errors
	ErrInvalidProjectType   = errors.New("project type must be 'WP' or 'Hodinovka'")
	ErrInvalidProjectStatus = errors.New("project status must be 'Realizace' or 'Pre sales'")
)
