package handler

import (
	"encoding/json"
	"net/http"

	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/delivery/http/middleware"
	"health-wheel/internal/usecase"
	"health-wheel/pkg/response"
	"health-wheel/pkg/validator"

	"github.com/gorilla/mux"
)

// DraftHandler serves the unsaved survey answers of the current session.
type DraftHandler struct {
	draftUsecase usecase.DraftUsecase
	validator    *validator.CustomValidator
}

func NewDraftHandler(draftUsecase usecase.DraftUsecase, validator *validator.CustomValidator) *DraftHandler {
	return &DraftHandler{
		draftUsecase: draftUsecase,
		validator:    validator,
	}
}

func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	response.Success(w, http.StatusOK, "Draft retrieved successfully", h.draftUsecase.GetDraft(sessionID))
}

func (h *DraftHandler) SetResponse(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	var req dto.SetDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	draft, err := h.draftUsecase.SetResponse(sessionID, mux.Vars(r)["criterion"], req.Rating)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	response.Success(w, http.StatusOK, "Draft updated", draft)
}

func (h *DraftHandler) RemoveResponse(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	response.Success(w, http.StatusOK, "Draft updated", h.draftUsecase.RemoveResponse(sessionID, mux.Vars(r)["criterion"]))
}

// DiscardDraft is called when the patient navigates away from the survey.
func (h *DraftHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	h.draftUsecase.DiscardDraft(sessionID)
	response.Success(w, http.StatusOK, "Draft discarded", nil)
}
