package http

import (
	"encoding/json"
	"net/http"

	"github.com/planboard/capacity-backend-go/internal/handler/http/response"
	"github.com/planboard/capacity-backend-go/internal/pkg/jwt"
	"github.com/planboard/capacity-backend-go/internal/pkg/validator"
)

type AuthHandler interface {
	DevToken(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService jwt.Service
	env        string
}

func NewAuthHandler(jwtService jwt.Service, env string) AuthHandler {
	return &authHandlerImpl{
		jwtService: jwtService,
		env:        env,
	}
}

type devTokenRequest struct {
	PlannerID string `json:"planner_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

func (r devTokenRequest) validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PlannerID) {
		errs = append(errs, validator.ValidationError{Field: "planner_id", Message: "planner_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DevToken issues an access token without credentials so a local frontend
// can authenticate before an identity provider is wired in. Only the
// development environment exposes it; everywhere else the route answers 404.
func (h *authHandlerImpl) DevToken(w http.ResponseWriter, r *http.Request) {
	if h.env != "development" {
		response.NotFound(w, "Not found")
		return
	}

	var req devTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	if req.Role == "" {
		req.Role = "planner"
	}

	token, expiresAt, err := h.jwtService.GenerateAccessToken(req.PlannerID, req.Name, req.Role)
	if err != nil {
		response.InternalServerError(w, "Failed to generate token")
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_at": expiresAt,
	})
}
