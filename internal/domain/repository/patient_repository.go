package repository

import (
	"context"
	"errors"

	"health-wheel/internal/domain/entity"
)

// ErrDuplicate is returned when a unique field already exists in the store.
var ErrDuplicate = errors.New("duplicate record")

// PatientRepository finders return (nil, nil) when no record matches.
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id int64) (*entity.Patient, error)
	FindByEmail(ctx context.Context, email string) (*entity.Patient, error)
	FindAll(ctx context.Context, page, limit int) ([]entity.Patient, int64, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Delete(ctx context.Context, id int64) error
}
