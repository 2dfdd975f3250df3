// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/careeriq/internal/domain/model"
)

// ProfileDependencies defines the interface for profile operations.
type ProfileDependencies interface {
	SaveProfile(ctx context.Context, p model.Profile) (model.Profile, error)
	GetProfile(ctx context.Context, userID string) (model.Profile, error)
}

// ProfileHandler handles profile requests.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// profileRequest mirrors the profile document accepted on PUT /profile.
type profileRequest struct {
	GraduationYear  int                 `json:"graduation_year"`
	FieldOfStudy    string              `json:"field_of_study"`
	CurrentCompany  string              `json:"current_company"`
	CurrentTitle    string              `json:"current_title"`
	Country         string              `json:"country"`
	YearsExperience float64             `json:"years_experience"`
	TechnicalSkills []string            `json:"technical_skills"`
	SoftSkills      []string            `json:"soft_skills"`
	Salary          float64             `json:"salary_package"`
	CareerHistory   []model.CareerEntry `json:"career_progression"`
}

func (p profileRequest) validate() error {
	switch {
	case strings.TrimSpace(p.CurrentTitle) == "":
		return errMissingField("current_title")
	case strings.TrimSpace(p.Country) == "":
		return errMissingField("country")
	case p.YearsExperience < 0:
		return errInvalidField("years_experience")
	case p.Salary < 0:
		return errInvalidField("salary_package")
	}
	return nil
}

// HandleProfile handles GET and PUT /api/v1/profile requests.
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPut:
		h.handlePut(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ProfileHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	profile, err := h.deps.GetProfile(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) handlePut(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	profile, err := h.deps.SaveProfile(r.Context(), model.Profile{
		UserID:          identity.UserID,
		GraduationYear:  req.GraduationYear,
		FieldOfStudy:    req.FieldOfStudy,
		CurrentCompany:  req.CurrentCompany,
		CurrentTitle:    req.CurrentTitle,
		Country:         req.Country,
		YearsExperience: req.YearsExperience,
		TechnicalSkills: req.TechnicalSkills,
		SoftSkills:      req.SoftSkills,
		Salary:          req.Salary,
		CareerHistory:   req.CareerHistory,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
