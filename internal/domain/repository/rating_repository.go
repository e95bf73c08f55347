package repository

import (
	"context"
	"errors"
	"fmt"

	"health-wheel/internal/domain/entity"
)

type RatingRepository interface {
	// Submit persists one rating linked to its patient and criterion. Whether
	// the write is atomic depends on the backend; a non-atomic backend reports
	// a failure after the record was created as *PartialWriteError.
	Submit(ctx context.Context, sub entity.RatingSubmission) (*entity.Rating, error)
	FindByPatient(ctx context.Context, patientID int64, domain string) ([]entity.Rating, error)
}

// ErrInvalidReference is returned when a rating points at a missing patient or criterion.
var ErrInvalidReference = errors.New("rating references a missing patient or criterion")

// Submission steps of a non-atomic rating write
const (
	StepCreate        = "create"
	StepLinkPatient   = "link_patient"
	StepLinkCriterion = "link_criterion"
)

// PartialWriteError reports a rating record left behind without all of its links.
type PartialWriteError struct {
	RatingID int64
	Step     string
	Err      error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("rating %d persisted but %s failed: %v", e.RatingID, e.Step, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
