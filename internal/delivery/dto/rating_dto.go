package dto

type SubmitRatingRequest struct {
	CriterionID int64  `json:"criterion_id" validate:"required_without=Criterion"`
	Criterion   string `json:"criterion" validate:"required_without=CriterionID,max=500"`
	Domain      string `json:"domain" validate:"max=255"`
	Rating      int    `json:"rating" validate:"required,gte=1,lte=5"`
}

type RatingResponse struct {
	ID          int64  `json:"id"`
	PatientID   int64  `json:"patient_id"`
	CriterionID *int64 `json:"criterion_id,omitempty"`
	Criterion   string `json:"criterion"`
	Domain      string `json:"domain"`
	Rating      int    `json:"rating"`
	CreatedAt   string `json:"created_at"`
}
