package dto

// GenerateQuestionRequest names a stored criterion by id, or carries the
// criterion text and its provenance directly
type GenerateQuestionRequest struct {
	CriterionID int64    `json:"criterion_id" validate:"required_without=Criterion"`
	Criterion   string   `json:"criterion" validate:"required_without=CriterionID,max=500"`
	Provenance  []string `json:"provenance" validate:"max=50,dive,max=255"`
}

type DomainQuestionsRequest struct {
	Domain string `json:"domain" validate:"required,max=255"`
}

// QuestionResponse carries either the generated question or the error of
// that single criterion
type QuestionResponse struct {
	CriterionID int64    `json:"criterion_id,omitempty"`
	Criterion   string   `json:"criterion"`
	Domain      string   `json:"domain,omitempty"`
	Provenance  []string `json:"provenance,omitempty"`
	Prompt      string   `json:"prompt"`
	Question    string   `json:"question,omitempty"`
	Error       string   `json:"error,omitempty"`
}

type DomainQuestionsResponse struct {
	Domain    string             `json:"domain"`
	Questions []QuestionResponse `json:"questions"`
}
