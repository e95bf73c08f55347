package usecase

import (
	"context"
	"testing"

	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/domain/entity"
	"health-wheel/internal/domain/repository"
	"health-wheel/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memLinkRepo struct {
	links map[string][]int64
}

func newMemLinkRepo() *memLinkRepo {
	return &memLinkRepo{links: make(map[string][]int64)}
}

func (r *memLinkRepo) ListLinks(_ context.Context, patientID int64, field string) ([]entity.LinkedRecord, error) {
	records := make([]entity.LinkedRecord, 0)
	for _, id := range r.links[field] {
		records = append(records, entity.LinkedRecord{"Id": float64(id)})
	}
	return records, nil
}

func (r *memLinkRepo) Link(_ context.Context, _ int64, field string, ids []int64) error {
	r.links[field] = append(r.links[field], ids...)
	return nil
}

func (r *memLinkRepo) Unlink(_ context.Context, _ int64, field string, ids []int64) error {
	kept := r.links[field][:0]
	for _, existing := range r.links[field] {
		drop := false
		for _, id := range ids {
			drop = drop || id == existing
		}
		if !drop {
			kept = append(kept, existing)
		}
	}
	r.links[field] = kept
	return nil
}

func TestPatientLinks_LinkListUnlink(t *testing.T) {
	patients := newMemPatientRepo()
	p := seedPatient(t, patients, "bob@example.com")
	links := newMemLinkRepo()
	uc := NewPatientLinkUsecase(quietLogger(), patients, links, service.NewAuditService(quietLogger()))
	ctx := context.Background()

	require.NoError(t, uc.AddLinks(ctx, 1, p.ID, &dto.PatientLinksRequest{Field: "cRatings", IDs: []int64{101, 102}}))
	require.NoError(t, uc.RemoveLinks(ctx, 1, p.ID, &dto.PatientLinksRequest{Field: "cRatings", IDs: []int64{101}}))

	records, err := uc.GetLinks(ctx, p.ID, &dto.PatientLinksRequest{Field: "cRatings"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(102), records[0].ID())
}

func TestPatientLinks_Errors(t *testing.T) {
	patients := newMemPatientRepo()
	p := seedPatient(t, patients, "bob@example.com")
	audit := service.NewAuditService(quietLogger())
	ctx := context.Background()

	uc := NewPatientLinkUsecase(quietLogger(), patients, newMemLinkRepo(), audit)
	_, err := uc.GetLinks(ctx, 999, &dto.PatientLinksRequest{Field: "cRatings"})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	err = uc.RemoveLinks(ctx, 1, p.ID, &dto.PatientLinksRequest{Field: "cRatings"})
	assert.ErrorIs(t, err, ErrLinkTargetsRequired)

	unsupported := NewPatientLinkUsecase(quietLogger(), patients, nil, audit)
	err = unsupported.AddLinks(ctx, 1, p.ID, &dto.PatientLinksRequest{Field: "cRatings", IDs: []int64{1}})
	assert.ErrorIs(t, err, repository.ErrLinksUnsupported)
}
