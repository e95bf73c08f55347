package nocodb

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"health-wheel/internal/domain/entity"
	domainRepo "health-wheel/internal/domain/repository"
	store "health-wheel/internal/infrastructure/nocodb"
)

type criterionRecord struct {
	ID         int64             `json:"Id"`
	Domain     string            `json:"domaines"`
	Text       string            `json:"criteres"`
	Provenance entity.Provenance `json:"origine_data"`
}

func (r criterionRecord) toEntity() entity.Criterion {
	return entity.Criterion{
		ID:         r.ID,
		Domain:     strings.TrimSpace(r.Domain),
		Text:       strings.TrimSpace(r.Text),
		Provenance: r.Provenance,
	}
}

type criterionRepository struct {
	client *store.Client
	table  string
}

func NewCriterionRepository(client *store.Client, table string) domainRepo.CriterionRepository {
	return &criterionRepository{client: client, table: table}
}

func (r *criterionRepository) FindAll(ctx context.Context, domain string) ([]entity.Criterion, error) {
	rows, err := r.client.ListAll(ctx, r.table, store.Query{Sort: "Id"})
	if err != nil {
		return nil, err
	}

	domain = strings.TrimSpace(domain)

	criteria := make([]entity.Criterion, 0, len(rows))
	for _, raw := range rows {
		var rec criterionRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode criterion: %w", err)
		}
		c := rec.toEntity()
		if c.Text == "" || (domain != "" && c.Domain != domain) {
			continue
		}
		criteria = append(criteria, c)
	}
	return criteria, nil
}

func (r *criterionRepository) FindByID(ctx context.Context, id int64) (*entity.Criterion, error) {
	var rec criterionRecord
	if err := r.client.Get(ctx, r.table, id, &rec); err != nil {
		if store.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if rec.ID == 0 {
		return nil, nil
	}
	c := rec.toEntity()
	return &c, nil
}

// FindByText matches in memory; criterion texts may contain characters the
// where syntax cannot carry.
func (r *criterionRepository) FindByText(ctx context.Context, domain, text string) (*entity.Criterion, error) {
	criteria, err := r.FindAll(ctx, domain)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	for i := range criteria {
		if strings.EqualFold(criteria[i].Text, text) {
			return &criteria[i], nil
		}
	}
	return nil, nil
}

func (r *criterionRepository) Domains(ctx context.Context) ([]string, error) {
	criteria, err := r.FindAll(ctx, "")
	if err != nil {
		return nil, err
	}

	domains := make([]string, 0)
	for _, c := range criteria {
		if c.Domain != "" && !slices.Contains(domains, c.Domain) {
			domains = append(domains, c.Domain)
		}
	}
	slices.Sort(domains)
	return domains, nil
}

func (r *criterionRepository) Create(ctx context.Context, criterion *entity.Criterion) error {
	id, err := r.client.Create(ctx, r.table, map[string]any{
		"domaines":     criterion.Domain,
		"criteres":     criterion.Text,
		"origine_data": strings.Join(criterion.Provenance, ","),
	})
	if err != nil {
		return err
	}
	criterion.ID = id
	return nil
}
