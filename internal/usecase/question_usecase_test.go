package usecase

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/domain/entity"
	"health-wheel/internal/infrastructure/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sleepCriteria = &memCriterionRepo{criteria: []entity.Criterion{
	{ID: 1, Domain: "Sommeil", Text: "Qualité du sommeil", Provenance: entity.Provenance{"Montre connectée"}},
	{ID: 2, Domain: "Sommeil", Text: "Durée du sommeil"},
	{ID: 3, Domain: "Sommeil", Text: "Réveils nocturnes"},
	{ID: 4, Domain: "Travail", Text: "Charge de travail"},
}}

func TestGenerateQuestion_ByText(t *testing.T) {
	var seen string
	uc := NewQuestionUsecase(quietLogger(), &memCriterionRepo{}, completerFunc(func(_ context.Context, prompt string) (string, error) {
		seen = prompt
		return "Sur une échelle de 1 à 5 ?", nil
	}), 2)

	resp, err := uc.GenerateQuestion(context.Background(), &dto.GenerateQuestionRequest{
		Criterion:  "Qualité du sommeil",
		Provenance: []string{"Montre connectée", "Questionnaire"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sur une échelle de 1 à 5 ?", resp.Question)
	assert.Equal(t, seen, resp.Prompt)
	assert.Contains(t, resp.Prompt, "Qualité du sommeil")
	assert.Contains(t, resp.Prompt, "- Montre connectée")
}

func TestGenerateQuestion_UnknownCriterion(t *testing.T) {
	uc := NewQuestionUsecase(quietLogger(), sleepCriteria, completerFunc(func(context.Context, string) (string, error) {
		t.Error("model must not be called")
		return "", nil
	}), 2)

	_, err := uc.GenerateQuestion(context.Background(), &dto.GenerateQuestionRequest{CriterionID: 99})
	assert.ErrorIs(t, err, ErrCriterionNotFound)
}

func TestGenerateQuestion_NotConfigured(t *testing.T) {
	uc := NewQuestionUsecase(quietLogger(), sleepCriteria, completerFunc(func(context.Context, string) (string, error) {
		return "", llm.ErrNotConfigured
	}), 2)

	resp, err := uc.GenerateQuestion(context.Background(), &dto.GenerateQuestionRequest{CriterionID: 1})
	assert.ErrorIs(t, err, ErrGenerationFailed)
	require.NotNil(t, resp)
	assert.Equal(t, "question generator is not configured", resp.Error)
}

func TestGenerateForDomain_FailuresAreIndependent(t *testing.T) {
	var inFlight, peak atomic.Int32
	uc := NewQuestionUsecase(quietLogger(), sleepCriteria, completerFunc(func(_ context.Context, prompt string) (string, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		if strings.Contains(prompt, "Durée") {
			return "", errUpstream
		}
		return "question", nil
	}), 2)

	resp, err := uc.GenerateForDomain(context.Background(), "Sommeil")
	require.NoError(t, err)
	require.Len(t, resp.Questions, 3)

	assert.Equal(t, "question", resp.Questions[0].Question)
	assert.Empty(t, resp.Questions[1].Question)
	assert.Equal(t, "question generation failed", resp.Questions[1].Error)
	assert.Equal(t, "question", resp.Questions[2].Question)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestGenerateForDomain_Empty(t *testing.T) {
	uc := NewQuestionUsecase(quietLogger(), sleepCriteria, completerFunc(func(context.Context, string) (string, error) {
		return "", nil
	}), 0)

	_, err := uc.GenerateForDomain(context.Background(), "Inconnu")
	assert.ErrorIs(t, err, ErrDomainEmpty)
}
