package usecase

import (
	"context"
	"errors"
	"strings"

	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/domain/entity"
	"health-wheel/internal/domain/repository"
	"health-wheel/internal/infrastructure/llm"
	"health-wheel/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrGenerationFailed = errors.New("failed to generate question")
	ErrDomainEmpty      = errors.New("domain has no criteria")
)

const defaultGenerationConcurrency = 4

type QuestionUsecase interface {
	GenerateQuestion(ctx context.Context, req *dto.GenerateQuestionRequest) (*dto.QuestionResponse, error)
	GenerateForDomain(ctx context.Context, domain string) (*dto.DomainQuestionsResponse, error)
}

type questionUsecase struct {
	log           *logrus.Logger
	criterionRepo repository.CriterionRepository
	completer     llm.Completer
	concurrency   int
}

func NewQuestionUsecase(log *logrus.Logger, criterionRepo repository.CriterionRepository, completer llm.Completer, concurrency int) QuestionUsecase {
	if concurrency < 1 {
		concurrency = defaultGenerationConcurrency
	}
	return &questionUsecase{
		log:           log,
		criterionRepo: criterionRepo,
		completer:     completer,
		concurrency:   concurrency,
	}
}

// GenerateQuestion asks the model for one survey question. A request naming
// a stored criterion uses its text and provenance; otherwise the request's
// own text and provenance are used as given.
func (u *questionUsecase) GenerateQuestion(ctx context.Context, req *dto.GenerateQuestionRequest) (*dto.QuestionResponse, error) {
	criterion := entity.Criterion{Text: req.Criterion, Provenance: req.Provenance}

	if req.CriterionID != 0 {
		stored, err := u.criterionRepo.FindByID(ctx, req.CriterionID)
		if err != nil {
			u.log.Warnf("Failed to find criterion: %+v", err)
			return nil, err
		}
		if stored == nil {
			return nil, ErrCriterionNotFound
		}
		criterion = *stored
	}

	resp := u.generate(ctx, criterion)
	if resp.Error != "" {
		return resp, ErrGenerationFailed
	}
	return resp, nil
}

// GenerateForDomain generates the questions of every criterion of a domain
// concurrently. Failures are reported per criterion and never cancel the
// remaining generations.
func (u *questionUsecase) GenerateForDomain(ctx context.Context, domain string) (*dto.DomainQuestionsResponse, error) {
	domain = strings.TrimSpace(domain)
	criteria, err := u.criterionRepo.FindAll(ctx, domain)
	if err != nil {
		u.log.Warnf("Failed to list criteria: %+v", err)
		return nil, err
	}
	if len(criteria) == 0 {
		return nil, ErrDomainEmpty
	}

	questions := make([]dto.QuestionResponse, len(criteria))

	var g errgroup.Group
	g.SetLimit(u.concurrency)
	for i := range criteria {
		g.Go(func() error {
			questions[i] = *u.generate(ctx, criteria[i])
			return nil
		})
	}
	_ = g.Wait()

	return &dto.DomainQuestionsResponse{Domain: domain, Questions: questions}, nil
}

func (u *questionUsecase) generate(ctx context.Context, c entity.Criterion) *dto.QuestionResponse {
	prompt := service.BuildQuestionPrompt(c.Text, c.Provenance)
	resp := &dto.QuestionResponse{
		CriterionID: c.ID,
		Criterion:   c.Text,
		Domain:      c.Domain,
		Provenance:  c.Provenance,
		Prompt:      prompt,
	}

	question, err := u.completer.Complete(ctx, prompt)
	if err != nil {
		u.log.Warnf("Failed to generate question for %q: %+v", c.Text, err)
		resp.Error = questionErrorMessage(err)
		return resp
	}
	resp.Question = question
	return resp
}

func questionErrorMessage(err error) string {
	var statusErr *llm.StatusError
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return "question generator is not configured"
	case errors.As(err, &statusErr):
		return "question generator returned an error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "question generation timed out"
	default:
		return "question generation failed"
	}
}
