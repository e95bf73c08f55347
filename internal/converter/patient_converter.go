package converter

import (
	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:        patient.ID,
		Name:      patient.Name,
		Surname:   patient.Surname,
		Email:     patient.Email,
		Birthdate: patient.Birthdate,
		City:      patient.City,
		Role:      patient.Role,
		CreatedAt: patient.CreatedAt,
		UpdatedAt: patient.UpdatedAt,
	}
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *PatientToResponse(&patients[i]))
	}
	return responses
}

// PatientToSessionUser keeps the identity fields a session exposes
func PatientToSessionUser(patient *entity.Patient) dto.SessionUser {
	return dto.SessionUser{
		ID:    patient.ID,
		Name:  patient.FullName(),
		Email: patient.Email,
		Role:  patient.Role,
	}
}
