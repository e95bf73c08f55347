package usecase

import (
	"context"
	"fmt"
	"testing"

	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/domain/entity"
	"health-wheel/internal/domain/repository"
	"health-wheel/internal/service"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wellness = &memCriterionRepo{criteria: []entity.Criterion{
	{ID: 3, Domain: "Wellness", Text: "Sleep Quality"},
}}

func TestRatingSubmit_ResolvesCriterion(t *testing.T) {
	ratings := &stubRatingRepo{}
	uc := NewRatingUsecase(quietLogger(), ratings, wellness, service.NewAuditService(quietLogger()))

	resp, err := uc.Submit(context.Background(), 7, &dto.SubmitRatingRequest{Criterion: "sleep quality", Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, "Wellness", resp.Domain)

	want := []entity.RatingSubmission{{PatientID: 7, CriterionID: 3, Criterion: "Sleep Quality", Domain: "Wellness", Value: 4}}
	if diff := cmp.Diff(want, ratings.submitted); diff != "" {
		t.Errorf("submission mismatch (-want +got):\n%s", diff)
	}
}

func TestRatingSubmit_UnknownCriterionWritesNothing(t *testing.T) {
	ratings := &stubRatingRepo{}
	uc := NewRatingUsecase(quietLogger(), ratings, wellness, service.NewAuditService(quietLogger()))

	_, err := uc.Submit(context.Background(), 7, &dto.SubmitRatingRequest{CriterionID: 42, Rating: 4})
	assert.ErrorIs(t, err, ErrCriterionNotFound)
	assert.Empty(t, ratings.submitted)
}

func TestRatingSubmit_PartialWriteIsLoggedAsOrphan(t *testing.T) {
	log, hook := test.NewNullLogger()
	ratings := &stubRatingRepo{submitErr: fmt.Errorf("submit: %w", &repository.PartialWriteError{
		RatingID: 101,
		Step:     repository.StepLinkCriterion,
		Err:      errUpstream,
	})}
	uc := NewRatingUsecase(log, ratings, wellness, service.NewAuditService(quietLogger()))

	_, err := uc.Submit(context.Background(), 7, &dto.SubmitRatingRequest{CriterionID: 3, Rating: 2})
	assert.ErrorIs(t, err, ErrSubmissionFailed)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.EqualValues(t, 101, entry.Data["rating_id"])
	assert.Equal(t, repository.StepLinkCriterion, entry.Data["step"])
}

func TestRatingSubmit_GenericFailure(t *testing.T) {
	uc := NewRatingUsecase(quietLogger(), &stubRatingRepo{submitErr: errUpstream}, wellness, service.NewAuditService(quietLogger()))

	_, err := uc.Submit(context.Background(), 7, &dto.SubmitRatingRequest{CriterionID: 3, Rating: 2})
	assert.ErrorIs(t, err, ErrSubmissionFailed)
}

func TestRatingReads_SleepQualityResubmitted(t *testing.T) {
	ratings := &stubRatingRepo{ratings: []entity.Rating{
		{ID: 1, PatientID: 7, Domain: "Wellness", CriterionText: "Sleep Quality", Value: 4, CreatedAt: "2024-05-01T10:00:00Z"},
		{ID: 2, PatientID: 7, Domain: "Wellness", CriterionText: "Sleep Quality", Value: 2, CreatedAt: "2024-05-02T10:00:00Z"},
		{ID: 3, PatientID: 8, Domain: "Wellness", CriterionText: "Sleep Quality", Value: 5, CreatedAt: "2024-05-03T10:00:00Z"},
	}}
	uc := NewRatingUsecase(quietLogger(), ratings, wellness, service.NewAuditService(quietLogger()))
	ctx := context.Background()

	stars, err := uc.GetStars(ctx, 7)
	require.NoError(t, err)
	require.Contains(t, stars, "Wellness")
	assert.Equal(t, "3.0", stars["Wellness"].Average.String())
	require.NotNil(t, stars["Wellness"].LastUpdate)
	assert.Equal(t, "2024-05-02T10:00:00Z", *stars["Wellness"].LastUpdate)

	current, err := uc.GetCurrent(ctx, 7, "Wellness")
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, 2, current[0].Rating)
	assert.Equal(t, int64(2), current[0].RatingID)

	history, err := uc.GetHistory(ctx, 7, "")
	require.NoError(t, err)
	assert.Len(t, history["Wellness"].Entries, 2)
}

func TestRatingReads_FetchFailureIsGeneric(t *testing.T) {
	uc := NewRatingUsecase(quietLogger(), &stubRatingRepo{fetchErr: errUpstream}, wellness, service.NewAuditService(quietLogger()))

	stars, err := uc.GetStars(context.Background(), 7)
	assert.ErrorIs(t, err, ErrRatingsFetch)
	assert.Nil(t, stars)
}
