package dto

type SetDraftRequest struct {
	Rating int `json:"rating" validate:"required,gte=1,lte=5"`
}

type DraftResponse struct {
	Responses map[string]int `json:"responses"`
}
