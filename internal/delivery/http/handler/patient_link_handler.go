package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/delivery/http/middleware"
	"health-wheel/internal/domain/repository"
	"health-wheel/internal/usecase"
	"health-wheel/pkg/response"
	"health-wheel/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientLinkHandler struct {
	linkUsecase usecase.PatientLinkUsecase
	validator   *validator.CustomValidator
}

func NewPatientLinkHandler(linkUsecase usecase.PatientLinkUsecase, validator *validator.CustomValidator) *PatientLinkHandler {
	return &PatientLinkHandler{
		linkUsecase: linkUsecase,
		validator:   validator,
	}
}

// GetLinks lists the records linked to a patient through a relation field
// @Summary List linked records
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param field path string true "Link field ID"
// @Router /admin/patients/{id}/links/{field} [get]
func (h *PatientLinkHandler) GetLinks(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.parseRequest(w, r, false)
	if !ok {
		return
	}

	records, err := h.linkUsecase.GetLinks(r.Context(), id, req)
	if err != nil {
		h.writeError(w, err, "Failed to fetch linked records")
		return
	}

	response.Success(w, http.StatusOK, "Linked records retrieved successfully", records)
}

// AddLinks attaches records to a patient
// @Router /admin/patients/{id}/links/{field} [post]
func (h *PatientLinkHandler) AddLinks(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.parseRequest(w, r, true)
	if !ok {
		return
	}
	actorID, _ := middleware.GetPatientIDFromContext(r.Context())

	if err := h.linkUsecase.AddLinks(r.Context(), actorID, id, req); err != nil {
		h.writeError(w, err, "Failed to link records")
		return
	}

	response.Success(w, http.StatusOK, "Records linked successfully", nil)
}

// RemoveLinks detaches records from a patient; the records themselves stay
// @Router /admin/patients/{id}/links/{field} [delete]
func (h *PatientLinkHandler) RemoveLinks(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.parseRequest(w, r, true)
	if !ok {
		return
	}
	actorID, _ := middleware.GetPatientIDFromContext(r.Context())

	if err := h.linkUsecase.RemoveLinks(r.Context(), actorID, id, req); err != nil {
		h.writeError(w, err, "Failed to unlink records")
		return
	}

	response.Success(w, http.StatusOK, "Records unlinked successfully", nil)
}

func (h *PatientLinkHandler) parseRequest(w http.ResponseWriter, r *http.Request, withBody bool) (int64, *dto.PatientLinksRequest, bool) {
	id, ok := parseID(w, r)
	if !ok {
		return 0, nil, false
	}

	var req dto.PatientLinksRequest
	if withBody {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body")
			return 0, nil, false
		}
	}
	req.Field = mux.Vars(r)["field"]

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return 0, nil, false
	}
	return id, &req, true
}

func (h *PatientLinkHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrLinkTargetsRequired):
		response.BadRequest(w, "ids must list at least one record")
	case errors.Is(err, repository.ErrLinksUnsupported):
		response.Error(w, http.StatusNotImplemented, "Relation links are not supported by the configured store", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
