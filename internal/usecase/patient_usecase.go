package usecase

import (
	"context"
	"strconv"
	"strings"

	"health-wheel/internal/converter"
	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/domain/entity"
	"health-wheel/internal/domain/repository"
	"health-wheel/internal/service"

	"github.com/sirupsen/logrus"
)

const (
	defaultPageLimit = 25
	maxPageLimit     = 100
)

type PatientUsecase interface {
	UpdateSelfProfile(ctx context.Context, patientID int64, req *dto.UpdateProfileRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id int64) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context, page, limit int) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, actorID, id int64, req *dto.AdminUpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, actorID, id int64) error
}

type patientUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	sessions     service.SessionStore
	auditService service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	sessions service.SessionStore,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		patientRepo:  patientRepo,
		sessions:     sessions,
		auditService: auditService,
	}
}

// UpdateSelfProfile updates the patient's own profile.
//
// Allowed fields: name, surname, birthdate, city. Email and role are not
// editable by the patient.
func (u *patientUsecase) UpdateSelfProfile(ctx context.Context, patientID int64, req *dto.UpdateProfileRequest) (*dto.PatientResponse, error) {
	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	oldValue := converter.PatientToResponse(patient)
	updated := applyString(&patient.Name, req.Name)
	updated = applyString(&patient.Surname, req.Surname) || updated
	updated = applyString(&patient.Birthdate, req.Birthdate) || updated
	updated = applyString(&patient.City, req.City) || updated

	if !updated {
		return oldValue, nil
	}

	if err := u.patientRepo.Update(ctx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	newValue := converter.PatientToResponse(patient)
	u.auditService.LogUpdate(ctx, patientID, entity.AuditActionProfileUpdate, "patient", strconv.FormatInt(patientID, 10), oldValue, newValue)

	return newValue, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id int64) (*dto.PatientResponse, error) {
	patient, err := u.findPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAllPatients(ctx context.Context, page, limit int) (*dto.PatientListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	patients, total, err := u.patientRepo.FindAll(ctx, page, limit)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Page:     page,
		Limit:    limit,
		Total:    total,
	}, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, actorID, id int64, req *dto.AdminUpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.findPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	oldValue := converter.PatientToResponse(patient)
	if email := normalizeEmail(req.Email); email != "" && email != patient.Email {
		other, err := u.patientRepo.FindByEmail(ctx, email)
		if err != nil {
			u.log.Warnf("Failed to check existing patient: %+v", err)
			return nil, err
		}
		if other != nil && other.ID != patient.ID {
			return nil, ErrEmailAlreadyExists
		}
		patient.Email = email
	}

	applyString(&patient.Name, req.Name)
	applyString(&patient.Surname, req.Surname)
	applyString(&patient.Birthdate, req.Birthdate)
	applyString(&patient.City, req.City)
	applyString(&patient.Role, req.Role)

	if err := u.patientRepo.Update(ctx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	newValue := converter.PatientToResponse(patient)
	u.auditService.LogUpdate(ctx, actorID, entity.AuditActionPatientUpdate, "patient", strconv.FormatInt(id, 10), oldValue, newValue)

	return newValue, nil
}

// DeletePatient removes the record and revokes every session of the patient.
func (u *patientUsecase) DeletePatient(ctx context.Context, actorID, id int64) error {
	patient, err := u.findPatient(ctx, id)
	if err != nil {
		return err
	}

	if err := u.patientRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}

	if err := u.sessions.RevokeAll(ctx, id); err != nil {
		u.log.Warnf("Failed to revoke sessions of deleted patient %d: %+v", id, err)
	}

	u.auditService.LogDelete(ctx, actorID, entity.AuditActionPatientDelete, "patient", strconv.FormatInt(id, 10), converter.PatientToResponse(patient))
	return nil
}

func (u *patientUsecase) findPatient(ctx context.Context, id int64) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func applyString(dst *string, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" || value == *dst {
		return false
	}
	*dst = value
	return true
}
