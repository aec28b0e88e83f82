package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rezieresouza-rgb/portal-gestao/internal/clock"
	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
)

type MediationStore interface {
	CreateCase(ctx context.Context, c model.MediationCase) (*model.MediationCase, error)
	GetCase(ctx context.Context, id uuid.UUID) (*model.MediationCase, error)
	ListCases(ctx context.Context, schoolID uuid.UUID, status *model.CaseStatus) ([]model.MediationCase, error)
	AddNote(ctx context.Context, note model.CaseNote) (*model.CaseNote, error)
	UpdateCaseStatus(ctx context.Context, c model.MediationCase) error
}

type MediationService struct {
	store MediationStore
	clock clock.Clock
}

func NewMediationService(store MediationStore, clk clock.Clock) *MediationService {
	return &MediationService{store: store, clock: clk}
}

// caseTransitions lists the legal status moves. Resolved cases can only be
// archived; archived cases are final.
var caseTransitions = map[model.CaseStatus][]model.CaseStatus{
	model.CaseStatusOpen:       {model.CaseStatusInProgress, model.CaseStatusResolved},
	model.CaseStatusInProgress: {model.CaseStatusResolved, model.CaseStatusOpen},
	model.CaseStatusResolved:   {model.CaseStatusArchived},
}

type OpenCaseInput struct {
	StudentName string
	Reporter    string
	Category    string
	Summary     string
	Principal   model.Principal
}

func (s *MediationService) OpenCase(ctx context.Context, input OpenCaseInput) (*model.MediationCase, error) {
	if input.StudentName == "" || input.Summary == "" {
		return nil, fmt.Errorf("%w: student_name and summary are required", ErrInvalidInput)
	}
	if input.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}

	now := s.clock.Now()
	return s.store.CreateCase(ctx, model.MediationCase{
		SchoolID:    input.Principal.SchoolID,
		StudentName: input.StudentName,
		Reporter:    input.Reporter,
		Category:    input.Category,
		Summary:     input.Summary,
		Status:      model.CaseStatusOpen,
		OpenedAt:    now,
		UpdatedAt:   now,
	})
}

func (s *MediationService) GetCase(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.MediationCase, error) {
	c, err := s.store.GetCase(ctx, id)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	if c.SchoolID != principal.SchoolID {
		return nil, ErrPermissionDenied
	}
	return c, nil
}

func (s *MediationService) ListCases(ctx context.Context, status *model.CaseStatus, principal model.Principal) ([]model.MediationCase, error) {
	if status != nil && !validCaseStatus(*status) {
		return nil, fmt.Errorf("%w: invalid case status %q", ErrInvalidInput, *status)
	}
	return s.store.ListCases(ctx, principal.SchoolID, status)
}

func (s *MediationService) AddNote(ctx context.Context, caseID uuid.UUID, text string, principal model.Principal) (*model.CaseNote, error) {
	if !canManageCases(principal) {
		return nil, ErrPermissionDenied
	}
	if text == "" {
		return nil, fmt.Errorf("%w: note text is required", ErrInvalidInput)
	}
	if _, err := s.GetCase(ctx, caseID, principal); err != nil {
		return nil, err
	}

	return s.store.AddNote(ctx, model.CaseNote{
		CaseID:    caseID,
		AuthorID:  principal.UserID,
		Text:      text,
		CreatedAt: s.clock.Now(),
	})
}

type TransitionCaseInput struct {
	CaseID     uuid.UUID
	Status     model.CaseStatus
	AssigneeID *uuid.UUID
	Principal  model.Principal
}

func (s *MediationService) TransitionCase(ctx context.Context, input TransitionCaseInput) (*model.MediationCase, error) {
	if !canManageCases(input.Principal) {
		return nil, ErrPermissionDenied
	}
	if !validCaseStatus(input.Status) {
		return nil, fmt.Errorf("%w: invalid case status %q", ErrInvalidInput, input.Status)
	}

	c, err := s.GetCase(ctx, input.CaseID, input.Principal)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(c.Status, input.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, input.Status)
	}

	now := s.clock.Now()
	c.Status = input.Status
	c.UpdatedAt = now
	if input.AssigneeID != nil {
		c.AssigneeID = input.AssigneeID
	}
	if input.Status == model.CaseStatusResolved || input.Status == model.CaseStatusArchived {
		if c.ClosedAt == nil {
			closedAt := now
			c.ClosedAt = &closedAt
		}
	} else {
		c.ClosedAt = nil
	}

	if err := s.store.UpdateCaseStatus(ctx, *c); err != nil {
		return nil, mapLedgerError(err)
	}
	return c, nil
}

func canManageCases(principal model.Principal) bool {
	return principal.IsAdmin() || principal.IsCoordinator() || principal.IsCounselor()
}

func validCaseStatus(status model.CaseStatus) bool {
	switch status {
	case model.CaseStatusOpen, model.CaseStatusInProgress, model.CaseStatusResolved, model.CaseStatusArchived:
		return true
	default:
		return false
	}
}

func transitionAllowed(from, to model.CaseStatus) bool {
	for _, allowed := range caseTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
