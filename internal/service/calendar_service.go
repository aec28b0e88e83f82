package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
)

type CalendarStore interface {
	CreateEvent(ctx context.Context, event model.CampaignEvent) (*model.CampaignEvent, error)
	ListEvents(ctx context.Context, schoolID uuid.UUID, from, to time.Time) ([]model.CampaignEvent, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*model.CampaignEvent, error)
	UpdateEvent(ctx context.Context, event model.CampaignEvent) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type CalendarService struct {
	store CalendarStore
}

func NewCalendarService(store CalendarStore) *CalendarService {
	return &CalendarService{store: store}
}

type CampaignEventInput struct {
	Title       string
	Description string
	Category    string
	StartAt     time.Time
	EndAt       time.Time
	Principal   model.Principal
}

func validateEventInput(input CampaignEventInput) error {
	if !input.Principal.CanManageOrders() {
		return ErrPermissionDenied
	}
	if input.Title == "" || input.Category == "" {
		return fmt.Errorf("%w: title and category are required", ErrInvalidInput)
	}
	if input.StartAt.IsZero() || input.EndAt.IsZero() || input.StartAt.After(input.EndAt) {
		return fmt.Errorf("%w: invalid event period", ErrInvalidInput)
	}
	return nil
}

func (s *CalendarService) CreateEvent(ctx context.Context, input CampaignEventInput) (*model.CampaignEvent, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}
	return s.store.CreateEvent(ctx, model.CampaignEvent{
		SchoolID:    input.Principal.SchoolID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		StartAt:     dateOnly(input.StartAt),
		EndAt:       dateOnly(input.EndAt),
	})
}

func (s *CalendarService) ListEvents(ctx context.Context, from, to time.Time, principal model.Principal) ([]model.CampaignEvent, error) {
	if from.IsZero() || to.IsZero() || from.After(to) {
		return nil, fmt.Errorf("%w: invalid date range", ErrInvalidInput)
	}
	return s.store.ListEvents(ctx, principal.SchoolID, dateOnly(from), dateOnly(to).Add(24*time.Hour))
}

func (s *CalendarService) UpdateEvent(ctx context.Context, eventID uuid.UUID, input CampaignEventInput) (*model.CampaignEvent, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	if event.SchoolID != input.Principal.SchoolID {
		return nil, ErrPermissionDenied
	}

	event.Title = input.Title
	event.Description = input.Description
	event.Category = input.Category
	event.StartAt = dateOnly(input.StartAt)
	event.EndAt = dateOnly(input.EndAt)

	if err := s.store.UpdateEvent(ctx, *event); err != nil {
		return nil, mapLedgerError(err)
	}
	return event, nil
}

func (s *CalendarService) DeleteEvent(ctx context.Context, eventID uuid.UUID, principal model.Principal) error {
	if !principal.CanManageOrders() {
		return ErrPermissionDenied
	}

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return mapLedgerError(err)
	}
	if event.SchoolID != principal.SchoolID {
		return ErrPermissionDenied
	}
	return mapLedgerError(s.store.DeleteEvent(ctx, eventID))
}
