package nocodb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"health-wheel/internal/domain/entity"
	domainRepo "health-wheel/internal/domain/repository"
	store "health-wheel/internal/infrastructure/nocodb"
)

type ratingRecord struct {
	ID        int64  `json:"Id"`
	Title     string `json:"Title"`
	CreatedAt string `json:"CreatedAt"`
	UpdatedAt string `json:"UpdatedAt"`
	PatientID int64  `json:"patient_id"`
	Type      string `json:"type"`
	Data      string `json:"data"`
	Rating    int    `json:"rating"`
	Domain    string `json:"criteres_domaine"`
	Criterion string `json:"criteres"`
}

func (r ratingRecord) toEntity() entity.Rating {
	return entity.Rating{
		ID:            r.ID,
		Title:         r.Title,
		Type:          r.Type,
		Value:         r.Rating,
		Data:          r.Data,
		Domain:        r.Domain,
		CriterionText: r.Criterion,
		PatientID:     r.PatientID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// RatingLinks names the link fields of the ratings table.
type RatingLinks struct {
	Patient   string
	Criterion string
}

type ratingRepository struct {
	client *store.Client
	table  string
	links  RatingLinks
}

func NewRatingRepository(client *store.Client, table string, links RatingLinks) domainRepo.RatingRepository {
	return &ratingRepository{client: client, table: table, links: links}
}

// Submit performs create, link to patient, link to criterion as three
// sequential calls. The store offers no transaction: once the record exists,
// a later failure leaves it in place and is reported as *PartialWriteError.
func (r *ratingRepository) Submit(ctx context.Context, sub entity.RatingSubmission) (*entity.Rating, error) {
	if r.links.Patient == "" || r.links.Criterion == "" {
		return nil, fmt.Errorf("%w: rating link fields", store.ErrNotConfigured)
	}

	rating := entity.NewRating(sub)
	id, err := r.client.Create(ctx, r.table, map[string]any{
		"Title":            rating.Title,
		"type":             rating.Type,
		"rating":           rating.Value,
		"data":             rating.Data,
		"criteres":         rating.CriterionText,
		"criteres_domaine": rating.Domain,
		"patient_id":       rating.PatientID,
	})
	if err != nil {
		return nil, fmt.Errorf("create rating: %w", err)
	}
	rating.ID = id
	rating.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := r.client.Link(ctx, r.table, r.links.Patient, id, sub.PatientID); err != nil {
		return rating, &domainRepo.PartialWriteError{RatingID: id, Step: domainRepo.StepLinkPatient, Err: err}
	}
	if err := r.client.Link(ctx, r.table, r.links.Criterion, id, sub.CriterionID); err != nil {
		return rating, &domainRepo.PartialWriteError{RatingID: id, Step: domainRepo.StepLinkCriterion, Err: err}
	}

	return rating, nil
}

// FindByPatient filters on patient_id in the store. The domain comes from
// the caller and is matched in memory so it never reaches the where clause.
func (r *ratingRepository) FindByPatient(ctx context.Context, patientID int64, domain string) ([]entity.Rating, error) {
	where, err := store.Where(store.EqInt("patient_id", patientID))
	if err != nil {
		return nil, err
	}
	rows, err := r.client.ListAll(ctx, r.table, store.Query{Where: where, Sort: "Id"})
	if err != nil {
		return nil, err
	}

	domain = strings.TrimSpace(domain)
	ratings := make([]entity.Rating, 0, len(rows))
	for _, raw := range rows {
		var rec ratingRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode rating: %w", err)
		}
		if domain != "" && strings.TrimSpace(rec.Domain) != domain {
			continue
		}
		ratings = append(ratings, rec.toEntity())
	}
	return ratings, nil
}
