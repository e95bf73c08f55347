package repository

import (
	"context"
	"errors"

	"health-wheel/internal/domain/entity"
)

// ErrLinksUnsupported is returned by backends without relation fields.
var ErrLinksUnsupported = errors.New("relation links are not supported by this store")

// PatientLinkRepository manages the relation fields of a patient record.
// field is the store's link field identifier.
type PatientLinkRepository interface {
	ListLinks(ctx context.Context, patientID int64, field string) ([]entity.LinkedRecord, error)
	Link(ctx context.Context, patientID int64, field string, targetIDs []int64) error
	Unlink(ctx context.Context, patientID int64, field string, targetIDs []int64) error
}
