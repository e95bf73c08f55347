package nocodb

import (
	"context"
	"encoding/json"
	"fmt"

	"health-wheel/internal/domain/entity"
	domainRepo "health-wheel/internal/domain/repository"
	store "health-wheel/internal/infrastructure/nocodb"
)

type patientLinkRepository struct {
	client *store.Client
	table  string
}

func NewPatientLinkRepository(client *store.Client, table string) domainRepo.PatientLinkRepository {
	return &patientLinkRepository{client: client, table: table}
}

func (r *patientLinkRepository) ListLinks(ctx context.Context, patientID int64, field string) ([]entity.LinkedRecord, error) {
	page, err := r.client.ListLinks(ctx, r.table, field, patientID)
	if err != nil {
		return nil, err
	}

	records := make([]entity.LinkedRecord, 0, len(page.List))
	for _, raw := range page.List {
		var rec entity.LinkedRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode linked record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *patientLinkRepository) Link(ctx context.Context, patientID int64, field string, targetIDs []int64) error {
	return r.client.Link(ctx, r.table, field, patientID, targetIDs...)
}

func (r *patientLinkRepository) Unlink(ctx context.Context, patientID int64, field string, targetIDs []int64) error {
	return r.client.Unlink(ctx, r.table, field, patientID, targetIDs...)
}
