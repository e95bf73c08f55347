package repository

import (
	"context"

	"health-wheel/internal/domain/entity"
)

type CriterionRepository interface {
	// FindAll lists criteria, restricted to one domain when domain is not empty.
	FindAll(ctx context.Context, domain string) ([]entity.Criterion, error)
	FindByID(ctx context.Context, id int64) (*entity.Criterion, error)
	FindByText(ctx context.Context, domain, text string) (*entity.Criterion, error)
	Domains(ctx context.Context) ([]string, error)
	Create(ctx context.Context, criterion *entity.Criterion) error
}
