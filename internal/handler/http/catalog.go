package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/planboard/capacity-backend-go/internal/domain/catalog"
	"github.com/planboard/capacity-backend-go/internal/handler/http/response"
)

type CatalogHandler interface {
	ListEngineers(w http.ResponseWriter, r *http.Request)
	ListProjects(w http.ResponseWriter, r *http.Request)
	GetProject(w http.ResponseWriter, r *http.Request)
	ListLicenses(w http.ResponseWriter, r *http.Request)
	ListCustomers(w http.ResponseWriter, r *http.Request)
	ListPrograms(w http.ResponseWriter, r *http.Request)
}

type catalogHandlerImpl struct {
	engineerRepo catalog.EngineerRepository
	projectRepo  catalog.ProjectRepository
	licenseRepo  catalog.LicenseRepository
	customerRepo catalog.CustomerRepository
	programRepo  catalog.ProgramRepository
}

func NewCatalogHandler(
	engineerRepo catalog.EngineerRepository,
	projectRepo catalog.ProjectRepository,
	licenseRepo catalog.LicenseRepository,
	customerRepo catalog.CustomerRepository,
	programRepo catalog.ProgramRepository,
) CatalogHandler {
	return &catalogHandlerImpl{
		engineerRepo: engineerRepo,
		projectRepo:  projectRepo,
		licenseRepo:  licenseRepo,
		customerRepo: customerRepo,
		programRepo:  programRepo,
	}
}

func (h *catalogHandlerImpl) ListEngineers(w http.ResponseWriter, r *http.Request) {
	engineers, err := h.engineerRepo.GetAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]catalog.EngineerResponse, 0, len(engineers))
	for _, e := range engineers {
		result = append(result, catalog.ToEngineerResponse(e))
	}

	response.Success(w, result)
}

func (h *catalogHandlerImpl) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectRepo.GetAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]catalog.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		result = append(result, catalog.ToProjectResponse(p))
	}

	response.Success(w, result)
}

func (h *catalogHandlerImpl) GetProject(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	project, err := h.projectRepo.GetByCode(r.Context(), code)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, catalog.ToProjectResponse(project))
}

func (h *catalogHandlerImpl) ListLicenses(w http.ResponseWriter, r *http.Request) {
	licenses, err := h.licenseRepo.GetAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	now := time.Now()
	result := make([]catalog.LicenseResponse, 0, len(licenses))
	for _, l := range licenses {
		result = append(result, catalog.ToLicenseResponse(l, now))
	}

	response.Success(w, result)
}

func (h *catalogHandlerImpl) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerRepo.GetAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]catalog.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		result = append(result, catalog.CustomerResponse{ID: c.ID, Name: c.Name})
	}

	response.Success(w, result)
}

func (h *catalogHandlerImpl) ListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.programRepo.GetAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]catalog.ProgramResponse, 0, len(programs))
	for _, p := range programs {
		result = append(result, catalog.ProgramResponse{ID: p.ID, Name: p.Name})
	}

	response.Success(w, result)
}
