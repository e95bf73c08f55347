package converter

import (
	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/domain/entity"
)

func CriterionToResponse(c *entity.Criterion) dto.CriterionResponse {
	provenance := []string(c.Provenance)
	if provenance == nil {
		provenance = []string{}
	}
	return dto.CriterionResponse{
		ID:         c.ID,
		Domain:     c.Domain,
		Criterion:  c.Text,
		Provenance: provenance,
	}
}

func CriteriaToResponses(criteria []entity.Criterion) []dto.CriterionResponse {
	responses := make([]dto.CriterionResponse, 0, len(criteria))
	for i := range criteria {
		responses = append(responses, CriterionToResponse(&criteria[i]))
	}
	return responses
}
