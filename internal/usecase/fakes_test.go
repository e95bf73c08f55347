package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"health-wheel/internal/domain/entity"
	"health-wheel/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type memPatientRepo struct {
	mu       sync.Mutex
	nextID   int64
	patients map[int64]*entity.Patient
}

func newMemPatientRepo() *memPatientRepo {
	return &memPatientRepo{patients: make(map[int64]*entity.Patient)}
}

func (r *memPatientRepo) Create(_ context.Context, p *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.patients {
		if existing.Email == p.Email {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.patients[p.ID] = &cp
	return nil
}

func (r *memPatientRepo) FindByID(_ context.Context, id int64) (*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.patients[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memPatientRepo) FindByEmail(_ context.Context, email string) (*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.patients {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPatientRepo) FindAll(_ context.Context, page, limit int) ([]entity.Patient, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]entity.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *memPatientRepo) Update(_ context.Context, p *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.patients[p.ID] = &cp
	return nil
}

func (r *memPatientRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.patients, id)
	return nil
}

type memCriterionRepo struct {
	criteria []entity.Criterion
	err      error
}

func (r *memCriterionRepo) FindAll(_ context.Context, domain string) ([]entity.Criterion, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Criterion
	for _, c := range r.criteria {
		if domain == "" || c.Domain == domain {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCriterionRepo) FindByID(_ context.Context, id int64) (*entity.Criterion, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, c := range r.criteria {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCriterionRepo) FindByText(_ context.Context, domain, text string) (*entity.Criterion, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, c := range r.criteria {
		if (domain == "" || c.Domain == domain) && strings.EqualFold(c.Text, text) {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCriterionRepo) Domains(context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, c := range r.criteria {
		if !seen[c.Domain] {
			seen[c.Domain] = true
			out = append(out, c.Domain)
		}
	}
	sort.Strings(out)
	return out, r.err
}

func (r *memCriterionRepo) Create(_ context.Context, c *entity.Criterion) error {
	c.ID = int64(len(r.criteria) + 1)
	r.criteria = append(r.criteria, *c)
	return nil
}

// stubRatingRepo records submissions and serves a fixed list back.
type stubRatingRepo struct {
	submitted []entity.RatingSubmission
	submitErr error
	ratings   []entity.Rating
	fetchErr  error
}

func (r *stubRatingRepo) Submit(_ context.Context, sub entity.RatingSubmission) (*entity.Rating, error) {
	r.submitted = append(r.submitted, sub)
	if r.submitErr != nil {
		return nil, r.submitErr
	}
	rating := entity.NewRating(sub)
	rating.ID = int64(len(r.submitted))
	rating.CreatedAt = "2024-05-01T10:00:00Z"
	return rating, nil
}

func (r *stubRatingRepo) FindByPatient(_ context.Context, patientID int64, domain string) ([]entity.Rating, error) {
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	var out []entity.Rating
	for _, rt := range r.ratings {
		if rt.PatientID == patientID && (domain == "" || rt.Domain == domain) {
			out = append(out, rt)
		}
	}
	return out, nil
}

type completerFunc func(ctx context.Context, prompt string) (string, error)

func (f completerFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

var errUpstream = errors.New("upstream unavailable")
