package usecase

import (
	"context"
	"testing"
	"time"

	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/domain/entity"
	"health-wheel/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPatientFixture(t *testing.T) (PatientUsecase, *memPatientRepo, service.SessionStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newMemPatientRepo()
	sessions := service.NewRedisSessionStore(client)
	return NewPatientUsecase(quietLogger(), repo, sessions, service.NewAuditService(quietLogger())), repo, sessions
}

func seedPatient(t *testing.T, repo *memPatientRepo, email string) *entity.Patient {
	t.Helper()
	p := &entity.Patient{Name: "Bob", Surname: "Durand", Email: email, City: "Paris", Role: entity.RoleUser}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestUpdateSelfProfile_OnlyProfileFields(t *testing.T) {
	uc, repo, _ := newPatientFixture(t)
	p := seedPatient(t, repo, "bob@example.com")

	resp, err := uc.UpdateSelfProfile(context.Background(), p.ID, &dto.UpdateProfileRequest{City: "Nantes", Name: "  "})
	require.NoError(t, err)
	assert.Equal(t, "Nantes", resp.City)
	assert.Equal(t, "Bob", resp.Name)
	assert.Equal(t, entity.RoleUser, resp.Role)
}

func TestGetAllPatients_ClampsPaging(t *testing.T) {
	uc, repo, _ := newPatientFixture(t)
	seedPatient(t, repo, "a@example.com")
	seedPatient(t, repo, "b@example.com")
	seedPatient(t, repo, "c@example.com")

	list, err := uc.GetAllPatients(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, int64(3), list.Total)
	assert.Len(t, list.Patients, 2)

	list, err = uc.GetAllPatients(context.Background(), 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, maxPageLimit, list.Limit)
}

func TestUpdatePatient_EmailConflict(t *testing.T) {
	uc, repo, _ := newPatientFixture(t)
	seedPatient(t, repo, "a@example.com")
	b := seedPatient(t, repo, "b@example.com")

	_, err := uc.UpdatePatient(context.Background(), 99, b.ID, &dto.AdminUpdatePatientRequest{Email: "A@example.com"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	resp, err := uc.UpdatePatient(context.Background(), 99, b.ID, &dto.AdminUpdatePatientRequest{Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.Role)
}

func TestDeletePatient_RevokesSessions(t *testing.T) {
	uc, repo, sessions := newPatientFixture(t)
	p := seedPatient(t, repo, "a@example.com")
	ctx := context.Background()
	require.NoError(t, sessions.Save(ctx, p.ID, "s1", time.Hour))

	require.NoError(t, uc.DeletePatient(ctx, 99, p.ID))

	live, err := sessions.Exists(ctx, p.ID, "s1")
	require.NoError(t, err)
	assert.False(t, live)

	_, err = uc.GetPatient(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
