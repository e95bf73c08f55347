package handler

import (
	"net/http"

	"health-wheel/internal/usecase"
	"health-wheel/pkg/response"
)

type CriterionHandler struct {
	criterionUsecase usecase.CriterionUsecase
}

func NewCriterionHandler(criterionUsecase usecase.CriterionUsecase) *CriterionHandler {
	return &CriterionHandler{criterionUsecase: criterionUsecase}
}

// GetDomains lists the wheel sectors
// @Summary List domains
// @Tags Criteria
// @Security BearerAuth
// @Router /domains [get]
func (h *CriterionHandler) GetDomains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.criterionUsecase.GetDomains(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get domains")
		return
	}

	response.Success(w, http.StatusOK, "Domains retrieved successfully", domains)
}

// GetCriteria lists criteria, optionally filtered by ?domain=
// @Summary List criteria
// @Tags Criteria
// @Security BearerAuth
// @Param domain query string false "Domain"
// @Router /criteria [get]
func (h *CriterionHandler) GetCriteria(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.criterionUsecase.GetCriteria(r.Context(), r.URL.Query().Get("domain"))
	if err != nil {
		response.InternalServerError(w, "Failed to get criteria")
		return
	}

	response.Success(w, http.StatusOK, "Criteria retrieved successfully", criteria)
}
