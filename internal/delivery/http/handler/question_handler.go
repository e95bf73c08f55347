package handler

import (
	"encoding/json"
	"net/http"

	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/usecase"
	"health-wheel/pkg/response"
	"health-wheel/pkg/validator"
)

type QuestionHandler struct {
	questionUsecase usecase.QuestionUsecase
	validator       *validator.CustomValidator
}

func NewQuestionHandler(questionUsecase usecase.QuestionUsecase, validator *validator.CustomValidator) *QuestionHandler {
	return &QuestionHandler{
		questionUsecase: questionUsecase,
		validator:       validator,
	}
}

// GenerateQuestion generates one survey question for a criterion
// @Summary Generate a question
// @Tags Questions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuestionRequest true "Criterion"
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /questions [post]
func (h *QuestionHandler) GenerateQuestion(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	question, err := h.questionUsecase.GenerateQuestion(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCriterionNotFound:
			response.NotFound(w, "Criterion not found")
		case usecase.ErrGenerationFailed:
			response.Error(w, http.StatusBadGateway, "Failed to generate question", question)
		default:
			response.InternalServerError(w, "Failed to generate question")
		}
		return
	}

	response.Success(w, http.StatusOK, "Question generated successfully", question)
}

// GenerateForDomain generates the questions of every criterion of a domain.
// Per-criterion failures are reported inside the payload.
func (h *QuestionHandler) GenerateForDomain(w http.ResponseWriter, r *http.Request) {
	var req dto.DomainQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	questions, err := h.questionUsecase.GenerateForDomain(r.Context(), req.Domain)
	if err != nil {
		switch err {
		case usecase.ErrDomainEmpty:
			response.NotFound(w, "Domain has no criteria")
		default:
			response.InternalServerError(w, "Failed to generate questions")
		}
		return
	}

	response.Success(w, http.StatusOK, "Questions generated", questions)
}
