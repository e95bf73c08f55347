package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"health-wheel/internal/converter"
	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/domain/entity"
	"health-wheel/internal/domain/repository"
	"health-wheel/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrSubmissionFailed = errors.New("failed to submit rating")
	ErrRatingsFetch     = errors.New("failed to fetch ratings")
)

type RatingUsecase interface {
	Submit(ctx context.Context, patientID int64, req *dto.SubmitRatingRequest) (*dto.RatingResponse, error)
	GetStars(ctx context.Context, patientID int64) (map[string]entity.DomainAggregate, error)
	GetHistory(ctx context.Context, patientID int64, domain string) (map[string]entity.DomainHistory, error)
	GetCurrent(ctx context.Context, patientID int64, domain string) ([]entity.CurrentRating, error)
}

type ratingUsecase struct {
	log           *logrus.Logger
	ratingRepo    repository.RatingRepository
	criterionRepo repository.CriterionRepository
	auditService  service.AuditService
}

func NewRatingUsecase(
	log *logrus.Logger,
	ratingRepo repository.RatingRepository,
	criterionRepo repository.CriterionRepository,
	auditService service.AuditService,
) RatingUsecase {
	return &ratingUsecase{
		log:           log,
		ratingRepo:    ratingRepo,
		criterionRepo: criterionRepo,
		auditService:  auditService,
	}
}

// Submit resolves the rated criterion and persists one rating for patientID.
// Every repository failure is reported as ErrSubmissionFailed.
func (u *ratingUsecase) Submit(ctx context.Context, patientID int64, req *dto.SubmitRatingRequest) (*dto.RatingResponse, error) {
	criterion, err := u.resolveCriterion(ctx, req)
	if err != nil {
		return nil, err
	}

	rating, err := u.ratingRepo.Submit(ctx, entity.RatingSubmission{
		PatientID:   patientID,
		CriterionID: criterion.ID,
		Criterion:   criterion.Text,
		Domain:      criterion.Domain,
		Value:       req.Rating,
	})
	if err != nil {
		var partial *repository.PartialWriteError
		if errors.As(err, &partial) {
			u.log.WithFields(logrus.Fields{
				"rating_id":    partial.RatingID,
				"step":         partial.Step,
				"patient_id":   patientID,
				"criterion_id": criterion.ID,
			}).Errorf("Orphaned rating record: %+v", partial.Err)
		} else {
			u.log.Warnf("Failed to submit rating: %+v", err)
		}
		return nil, ErrSubmissionFailed
	}

	resp := converter.RatingToResponse(rating)
	u.auditService.LogCreate(ctx, patientID, entity.AuditActionRatingSubmit, "rating", strconv.FormatInt(rating.ID, 10), resp)
	return resp, nil
}

func (u *ratingUsecase) resolveCriterion(ctx context.Context, req *dto.SubmitRatingRequest) (*entity.Criterion, error) {
	var (
		criterion *entity.Criterion
		err       error
	)
	if req.CriterionID != 0 {
		criterion, err = u.criterionRepo.FindByID(ctx, req.CriterionID)
	} else {
		criterion, err = u.criterionRepo.FindByText(ctx, strings.TrimSpace(req.Domain), strings.TrimSpace(req.Criterion))
	}
	if err != nil {
		u.log.Warnf("Failed to resolve criterion: %+v", err)
		return nil, ErrSubmissionFailed
	}
	if criterion == nil {
		return nil, ErrCriterionNotFound
	}
	return criterion, nil
}

func (u *ratingUsecase) GetStars(ctx context.Context, patientID int64) (map[string]entity.DomainAggregate, error) {
	ratings, err := u.fetch(ctx, patientID, "")
	if err != nil {
		return nil, err
	}
	return service.AggregateByDomain(ratings), nil
}

func (u *ratingUsecase) GetHistory(ctx context.Context, patientID int64, domain string) (map[string]entity.DomainHistory, error) {
	ratings, err := u.fetch(ctx, patientID, domain)
	if err != nil {
		return nil, err
	}
	return service.BuildHistory(ratings), nil
}

func (u *ratingUsecase) GetCurrent(ctx context.Context, patientID int64, domain string) ([]entity.CurrentRating, error) {
	ratings, err := u.fetch(ctx, patientID, domain)
	if err != nil {
		return nil, err
	}
	return service.LatestByCriterion(ratings), nil
}

func (u *ratingUsecase) fetch(ctx context.Context, patientID int64, domain string) ([]entity.Rating, error) {
	ratings, err := u.ratingRepo.FindByPatient(ctx, patientID, strings.TrimSpace(domain))
	if err != nil {
		u.log.Warnf("Failed to fetch ratings of patient %d: %+v", patientID, err)
		return nil, ErrRatingsFetch
	}
	return ratings, nil
}
