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

var ErrCriterionNotFound = errors.New("criterion not found")

// ImportResult counts the outcome of a catalogue import.
type ImportResult struct {
	Created int
	Skipped int
}

type CriterionUsecase interface {
	GetDomains(ctx context.Context) (*dto.DomainListResponse, error)
	GetCriteria(ctx context.Context, domain string) ([]dto.CriterionResponse, error)
	ImportCriteria(ctx context.Context, criteria []entity.Criterion) (*ImportResult, error)
}

type criterionUsecase struct {
	log           *logrus.Logger
	criterionRepo repository.CriterionRepository
	auditService  service.AuditService
}

func NewCriterionUsecase(log *logrus.Logger, criterionRepo repository.CriterionRepository, auditService service.AuditService) CriterionUsecase {
	return &criterionUsecase{
		log:           log,
		criterionRepo: criterionRepo,
		auditService:  auditService,
	}
}

func (u *criterionUsecase) GetDomains(ctx context.Context) (*dto.DomainListResponse, error) {
	domains, err := u.criterionRepo.Domains(ctx)
	if err != nil {
		u.log.Warnf("Failed to list domains: %+v", err)
		return nil, err
	}
	if domains == nil {
		domains = []string{}
	}
	return &dto.DomainListResponse{Domains: domains}, nil
}

func (u *criterionUsecase) GetCriteria(ctx context.Context, domain string) ([]dto.CriterionResponse, error) {
	criteria, err := u.criterionRepo.FindAll(ctx, strings.TrimSpace(domain))
	if err != nil {
		u.log.Warnf("Failed to list criteria: %+v", err)
		return nil, err
	}
	return converter.CriteriaToResponses(criteria), nil
}

// ImportCriteria creates every criterion not yet present in its domain.
// Entries without a domain or text are skipped.
func (u *criterionUsecase) ImportCriteria(ctx context.Context, criteria []entity.Criterion) (*ImportResult, error) {
	result := &ImportResult{}
	for i := range criteria {
		c := criteria[i]
		c.Domain = strings.TrimSpace(c.Domain)
		c.Text = strings.TrimSpace(c.Text)
		if c.Domain == "" || c.Text == "" {
			result.Skipped++
			continue
		}

		existing, err := u.criterionRepo.FindByText(ctx, c.Domain, c.Text)
		if err != nil {
			u.log.Warnf("Failed to look up criterion %q: %+v", c.Text, err)
			return result, err
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		if err := u.criterionRepo.Create(ctx, &c); err != nil {
			u.log.Warnf("Failed to create criterion %q: %+v", c.Text, err)
			return result, err
		}
		result.Created++
		u.auditService.LogCreate(ctx, 0, entity.AuditActionCriterionImport, "criterion", strconv.FormatInt(c.ID, 10), converter.CriterionToResponse(&c))
	}
	return result, nil
}
