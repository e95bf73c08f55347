package dto

type CriterionResponse struct {
	ID         int64    `json:"id"`
	Domain     string   `json:"domain"`
	Criterion  string   `json:"criterion"`
	Provenance []string `json:"provenance"`
}

type DomainListResponse struct {
	Domains []string `json:"domains"`
}
