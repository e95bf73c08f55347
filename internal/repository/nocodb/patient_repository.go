package nocodb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"health-wheel/internal/domain/entity"
	domainRepo "health-wheel/internal/domain/repository"
	store "health-wheel/internal/infrastructure/nocodb"
)

type patientRecord struct {
	ID        int64  `json:"Id"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Birthdate string `json:"birthdate"`
	City      string `json:"city"`
	Role      string `json:"role"`
	CreatedAt string `json:"CreatedAt"`
	UpdatedAt string `json:"UpdatedAt"`
}

func (r patientRecord) toEntity() entity.Patient {
	p := entity.Patient{
		ID:        r.ID,
		Name:      r.Name,
		Surname:   r.Surname,
		Email:     r.Email,
		Password:  r.Password,
		Birthdate: r.Birthdate,
		City:      r.City,
		Role:      r.Role,
	}
	if t, ok := entity.ParseTimestamp(r.CreatedAt); ok {
		p.CreatedAt = t
	}
	if t, ok := entity.ParseTimestamp(r.UpdatedAt); ok {
		p.UpdatedAt = t
	}
	return p
}

func patientFields(p *entity.Patient) map[string]any {
	fields := map[string]any{
		"name":      p.Name,
		"surname":   p.Surname,
		"email":     p.Email,
		"password":  p.Password,
		"birthdate": p.Birthdate,
		"city":      p.City,
		"role":      p.Role,
	}
	if p.ID != 0 {
		fields["Id"] = p.ID
	}
	return fields
}

type patientRepository struct {
	client *store.Client
	table  string
}

func NewPatientRepository(client *store.Client, table string) domainRepo.PatientRepository {
	return &patientRepository{client: client, table: table}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	id, err := r.client.Create(ctx, r.table, patientFields(patient))
	if err != nil {
		return err
	}
	patient.ID = id
	return nil
}

func (r *patientRepository) FindByID(ctx context.Context, id int64) (*entity.Patient, error) {
	var rec patientRecord
	if err := r.client.Get(ctx, r.table, id, &rec); err != nil {
		if store.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if rec.ID == 0 {
		return nil, nil
	}
	p := rec.toEntity()
	return &p, nil
}

// FindByEmail filters in the store when the address is a plain literal and
// falls back to scanning the table when it holds where-syntax characters.
func (r *patientRepository) FindByEmail(ctx context.Context, email string) (*entity.Patient, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	if !store.SafeValue(email) {
		return r.scanByEmail(ctx, email)
	}

	where, err := store.Where(store.Eq("email", email))
	if err != nil {
		return nil, err
	}
	page, err := r.client.List(ctx, r.table, store.Query{Where: where, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(page.List) == 0 {
		return nil, nil
	}

	var rec patientRecord
	if err := json.Unmarshal(page.List[0], &rec); err != nil {
		return nil, fmt.Errorf("decode patient: %w", err)
	}
	p := rec.toEntity()
	return &p, nil
}

func (r *patientRepository) scanByEmail(ctx context.Context, email string) (*entity.Patient, error) {
	rows, err := r.client.ListAll(ctx, r.table, store.Query{Sort: "Id"})
	if err != nil {
		return nil, err
	}
	for _, raw := range rows {
		var rec patientRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode patient: %w", err)
		}
		if strings.EqualFold(strings.TrimSpace(rec.Email), email) {
			p := rec.toEntity()
			return &p, nil
		}
	}
	return nil, nil
}

func (r *patientRepository) FindAll(ctx context.Context, page, limit int) ([]entity.Patient, int64, error) {
	result, err := r.client.List(ctx, r.table, store.Query{
		Sort:   "Id",
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, 0, err
	}

	patients := make([]entity.Patient, 0, len(result.List))
	for _, raw := range result.List {
		var rec patientRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, 0, fmt.Errorf("decode patient: %w", err)
		}
		patients = append(patients, rec.toEntity())
	}
	return patients, result.PageInfo.TotalRows, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	return r.client.Update(ctx, r.table, patientFields(patient))
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, r.table, id)
}
