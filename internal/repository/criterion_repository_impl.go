package repository

import (
	"context"
	"errors"
	"strings"

	"health-wheel/internal/domain/entity"
	domainRepo "health-wheel/internal/domain/repository"

	"gorm.io/gorm"
)

type criterionRepository struct {
	db *gorm.DB
}

func NewCriterionRepository(db *gorm.DB) domainRepo.CriterionRepository {
	return &criterionRepository{db: db}
}

func (r *criterionRepository) FindAll(ctx context.Context, domain string) ([]entity.Criterion, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if domain != "" {
		query = query.Where("domain = ?", domain)
	}

	var criteria []entity.Criterion
	if err := query.Find(&criteria).Error; err != nil {
		return nil, err
	}
	return criteria, nil
}

func (r *criterionRepository) FindByID(ctx context.Context, id int64) (*entity.Criterion, error) {
	var criterion entity.Criterion
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&criterion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &criterion, nil
}

func (r *criterionRepository) FindByText(ctx context.Context, domain, text string) (*entity.Criterion, error) {
	query := r.db.WithContext(ctx).Where("LOWER(text) = LOWER(?)", strings.TrimSpace(text))
	if domain != "" {
		query = query.Where("domain = ?", domain)
	}

	var criterion entity.Criterion
	err := query.Order("id ASC").First(&criterion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &criterion, nil
}

func (r *criterionRepository) Domains(ctx context.Context) ([]string, error) {
	var domains []string
	err := r.db.WithContext(ctx).
		Model(&entity.Criterion{}).
		Distinct("domain").
		Order("domain ASC").
		Pluck("domain", &domains).Error
	if err != nil {
		return nil, err
	}
	return domains, nil
}

func (r *criterionRepository) Create(ctx context.Context, criterion *entity.Criterion) error {
	return r.db.WithContext(ctx).Create(criterion).Error
}
