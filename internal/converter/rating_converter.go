package converter

import (
	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/domain/entity"
)

func RatingToResponse(r *entity.Rating) *dto.RatingResponse {
	if r == nil {
		return nil
	}
	return &dto.RatingResponse{
		ID:          r.ID,
		PatientID:   r.PatientID,
		CriterionID: r.CriterionID,
		Criterion:   r.CriterionText,
		Domain:      r.Domain,
		Rating:      r.Value,
		CreatedAt:   r.CreatedAt,
	}
}
