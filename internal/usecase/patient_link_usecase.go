package usecase

import (
	"context"
	"errors"
	"strconv"

	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/domain/entity"
	"health-wheel/internal/domain/repository"
	"health-wheel/internal/service"

	"github.com/sirupsen/logrus"
)

var ErrLinkTargetsRequired = errors.New("at least one record id is required")

// PatientLinkUsecase lists and edits the relation fields of a patient record
// (admin only).
type PatientLinkUsecase interface {
	GetLinks(ctx context.Context, patientID int64, req *dto.PatientLinksRequest) ([]entity.LinkedRecord, error)
	AddLinks(ctx context.Context, actorID, patientID int64, req *dto.PatientLinksRequest) error
	RemoveLinks(ctx context.Context, actorID, patientID int64, req *dto.PatientLinksRequest) error
}

type patientLinkUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	linkRepo     repository.PatientLinkRepository
	auditService service.AuditService
}

// NewPatientLinkUsecase accepts a nil linkRepo for stores without relation
// fields; every call then fails with repository.ErrLinksUnsupported.
func NewPatientLinkUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	linkRepo repository.PatientLinkRepository,
	auditService service.AuditService,
) PatientLinkUsecase {
	return &patientLinkUsecase{
		log:          log,
		patientRepo:  patientRepo,
		linkRepo:     linkRepo,
		auditService: auditService,
	}
}

func (u *patientLinkUsecase) GetLinks(ctx context.Context, patientID int64, req *dto.PatientLinksRequest) ([]entity.LinkedRecord, error) {
	if err := u.checkPatient(ctx, patientID); err != nil {
		return nil, err
	}

	records, err := u.linkRepo.ListLinks(ctx, patientID, req.Field)
	if err != nil {
		u.log.Warnf("Failed to list links %s of patient %d: %+v", req.Field, patientID, err)
		return nil, err
	}
	return records, nil
}

func (u *patientLinkUsecase) AddLinks(ctx context.Context, actorID, patientID int64, req *dto.PatientLinksRequest) error {
	if len(req.IDs) == 0 {
		return ErrLinkTargetsRequired
	}
	if err := u.checkPatient(ctx, patientID); err != nil {
		return err
	}

	if err := u.linkRepo.Link(ctx, patientID, req.Field, req.IDs); err != nil {
		u.log.Warnf("Failed to link %v to patient %d through %s: %+v", req.IDs, patientID, req.Field, err)
		return err
	}

	u.auditService.LogCreate(ctx, actorID, entity.AuditActionPatientLink, "patient", strconv.FormatInt(patientID, 10), req)
	return nil
}

func (u *patientLinkUsecase) RemoveLinks(ctx context.Context, actorID, patientID int64, req *dto.PatientLinksRequest) error {
	if len(req.IDs) == 0 {
		return ErrLinkTargetsRequired
	}
	if err := u.checkPatient(ctx, patientID); err != nil {
		return err
	}

	if err := u.linkRepo.Unlink(ctx, patientID, req.Field, req.IDs); err != nil {
		u.log.Warnf("Failed to unlink %v from patient %d through %s: %+v", req.IDs, patientID, req.Field, err)
		return err
	}

	u.auditService.LogDelete(ctx, actorID, entity.AuditActionPatientUnlink, "patient", strconv.FormatInt(patientID, 10), req)
	return nil
}

func (u *patientLinkUsecase) checkPatient(ctx context.Context, patientID int64) error {
	if u.linkRepo == nil {
		return repository.ErrLinksUnsupported
	}
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	return nil
}
