package usecase

import (
	"errors"
	"strings"

	"health-wheel/internal/delivery/dto"
	"health-wheel/internal/service"
)

var ErrDraftCriterionRequired = errors.New("criterion is required")

// DraftUsecase manages the in-memory survey answers of a session.
type DraftUsecase interface {
	GetDraft(sessionID string) *dto.DraftResponse
	SetResponse(sessionID, criterion string, rating int) (*dto.DraftResponse, error)
	RemoveResponse(sessionID, criterion string) *dto.DraftResponse
	DiscardDraft(sessionID string)
}

type draftUsecase struct {
	drafts *service.DraftRegistry
}

func NewDraftUsecase(drafts *service.DraftRegistry) DraftUsecase {
	return &draftUsecase{drafts: drafts}
}

func (u *draftUsecase) GetDraft(sessionID string) *dto.DraftResponse {
	draft, ok := u.drafts.Lookup(sessionID)
	if !ok {
		return &dto.DraftResponse{Responses: map[string]int{}}
	}
	return &dto.DraftResponse{Responses: draft.Snapshot()}
}

func (u *draftUsecase) SetResponse(sessionID, criterion string, rating int) (*dto.DraftResponse, error) {
	criterion = strings.TrimSpace(criterion)
	if criterion == "" {
		return nil, ErrDraftCriterionRequired
	}
	draft := u.drafts.Open(sessionID)
	if err := draft.Set(criterion, rating); err != nil {
		return nil, err
	}
	return &dto.DraftResponse{Responses: draft.Snapshot()}, nil
}

func (u *draftUsecase) RemoveResponse(sessionID, criterion string) *dto.DraftResponse {
	draft, ok := u.drafts.Lookup(sessionID)
	if !ok {
		return &dto.DraftResponse{Responses: map[string]int{}}
	}
	draft.Remove(strings.TrimSpace(criterion))
	return &dto.DraftResponse{Responses: draft.Snapshot()}
}

// DiscardDraft tears the draft down, as when the patient leaves the survey.
func (u *draftUsecase) DiscardDraft(sessionID string) {
	u.drafts.Discard(sessionID)
}
