package handler

import (
	"encoding/json"
	"net/http"

	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/delivery/http/middleware"
	"health-wheel/internal/usecase"
	"health-wheel/pkg/response"
	"health-wheel/pkg/validator"
)

type RatingHandler struct {
	ratingUsecase usecase.RatingUsecase
	validator     *validator.CustomValidator
}

func NewRatingHandler(ratingUsecase usecase.RatingUsecase, validator *validator.CustomValidator) *RatingHandler {
	return &RatingHandler{
		ratingUsecase: ratingUsecase,
		validator:     validator,
	}
}

// Submit records one star rating for the effective patient
// @Summary Submit a rating
// @Tags Ratings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param patient_id query int false "Target patient (admin only)"
// @Param request body dto.SubmitRatingRequest true "Rating"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /ratings [post]
func (h *RatingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetEffectivePatientID(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	var req dto.SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	rating, err := h.ratingUsecase.Submit(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrCriterionNotFound:
			response.NotFound(w, "Criterion not found")
		default:
			response.InternalServerError(w, "Failed to submit rating")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Rating submitted successfully", rating)
}

// GetStars returns the per-domain star summary
// @Summary Domain averages
// @Tags Ratings
// @Security BearerAuth
// @Param patient_id query int false "Target patient (admin only)"
// @Router /ratings/stars [get]
func (h *RatingHandler) GetStars(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetEffectivePatientID(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	stars, err := h.ratingUsecase.GetStars(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to fetch ratings")
		return
	}

	response.Success(w, http.StatusOK, "Ratings retrieved successfully", stars)
}

func (h *RatingHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetEffectivePatientID(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	history, err := h.ratingUsecase.GetHistory(r.Context(), patientID, r.URL.Query().Get("domain"))
	if err != nil {
		response.InternalServerError(w, "Failed to fetch ratings")
		return
	}

	response.Success(w, http.StatusOK, "History retrieved successfully", history)
}

func (h *RatingHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetEffectivePatientID(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	current, err := h.ratingUsecase.GetCurrent(r.Context(), patientID, r.URL.Query().Get("domain"))
	if err != nil {
		response.InternalServerError(w, "Failed to fetch ratings")
		return
	}

	response.Success(w, http.StatusOK, "Current ratings retrieved successfully", current)
}
