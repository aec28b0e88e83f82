package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
)

// fakeCalendarStore filters ListEvents the way the repository does: an event
// overlaps [from, to) when start_at < to and end_at >= from.
type fakeCalendarStore struct {
	events map[uuid.UUID]model.CampaignEvent
}

func newFakeCalendarStore() *fakeCalendarStore {
	return &fakeCalendarStore{events: make(map[uuid.UUID]model.CampaignEvent)}
}

func (f *fakeCalendarStore) CreateEvent(_ context.Context, event model.CampaignEvent) (*model.CampaignEvent, error) {
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	f.events[event.ID] = event
	return &event, nil
}

func (f *fakeCalendarStore) ListEvents(_ context.Context, schoolID uuid.UUID, from, to time.Time) ([]model.CampaignEvent, error) {
	var events []model.CampaignEvent
	for _, event := range f.events {
		if event.SchoolID != schoolID {
			continue
		}
		if event.StartAt.Before(to) && !event.EndAt.Before(from) {
			events = append(events, event)
		}
	}
	return events, nil
}

func (f *fakeCalendarStore) GetEvent(_ context.Context, id uuid.UUID) (*model.CampaignEvent, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &event, nil
}

func (f *fakeCalendarStore) UpdateEvent(_ context.Context, event model.CampaignEvent) error {
	if _, ok := f.events[event.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeCalendarStore) DeleteEvent(_ context.Context, id uuid.UUID) error {
	if _, ok := f.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.events, id)
	return nil
}

func TestCalendarService(t *testing.T) {
	t.Parallel()

	schoolID := uuid.New()

	eventInput := func(principal model.Principal) CampaignEventInput {
		return CampaignEventInput{
			Title:     "Semana da Alimentação Escolar",
			Category:  "CAMPANHA",
			StartAt:   time.Date(2026, 5, 11, 10, 30, 0, 0, time.UTC),
			EndAt:     time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
			Principal: principal,
		}
	}

	t.Run("create normalizes the period to dates", func(t *testing.T) {
		store := newFakeCalendarStore()
		svc := NewCalendarService(store)

		event, err := svc.CreateEvent(context.Background(), eventInput(coordinator(schoolID)))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if event.SchoolID != schoolID {
			t.Fatalf("expected event bound to the principal's school")
		}
		if !event.StartAt.Equal(time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected start truncated to date, got %s", event.StartAt)
		}
	})

	t.Run("create validation", func(t *testing.T) {
		store := newFakeCalendarStore()
		svc := NewCalendarService(store)
		principal := coordinator(schoolID)

		noTitle := eventInput(principal)
		noTitle.Title = ""
		backwards := eventInput(principal)
		backwards.StartAt, backwards.EndAt = backwards.EndAt, backwards.StartAt
		noPeriod := eventInput(principal)
		noPeriod.EndAt = time.Time{}

		for name, input := range map[string]CampaignEventInput{
			"missing title":    noTitle,
			"inverted period":  backwards,
			"missing end date": noPeriod,
		} {
			if _, err := svc.CreateEvent(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
			}
		}
		if len(store.events) != 0 {
			t.Fatalf("expected nothing persisted")
		}
	})

	t.Run("teachers cannot write the calendar", func(t *testing.T) {
		store := newFakeCalendarStore()
		svc := NewCalendarService(store)
		teacher := model.Principal{UserID: uuid.New(), SchoolID: schoolID, Role: model.RoleTeacher}

		if _, err := svc.CreateEvent(context.Background(), eventInput(teacher)); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied on create, got %v", err)
		}

		event, err := svc.CreateEvent(context.Background(), eventInput(coordinator(schoolID)))
		if err != nil {
			t.Fatalf("create event: %v", err)
		}
		if err := svc.DeleteEvent(context.Background(), event.ID, teacher); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied on delete, got %v", err)
		}
	})

	t.Run("list returns overlapping events only", func(t *testing.T) {
		store := newFakeCalendarStore()
		svc := NewCalendarService(store)
		principal := coordinator(schoolID)

		add := func(title string, start, end time.Time) {
			input := eventInput(principal)
			input.Title = title
			input.StartAt = start
			input.EndAt = end
			if _, err := svc.CreateEvent(context.Background(), input); err != nil {
				t.Fatalf("create %s: %v", title, err)
			}
		}
		day := func(d int) time.Time { return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC) }

		add("inside", day(12), day(13))
		add("straddles the start", day(8), day(10))
		add("straddles the end", day(20), day(25))
		add("before", day(1), day(5))
		add("after", day(26), day(28))

		events, err := svc.ListEvents(context.Background(), day(10), day(20), principal)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		got := make(map[string]bool, len(events))
		for _, event := range events {
			got[event.Title] = true
		}
		for _, want := range []string{"inside", "straddles the start", "straddles the end"} {
			if !got[want] {
				t.Fatalf("expected %q in the listing, got %v", want, got)
			}
		}
		if len(events) != 3 {
			t.Fatalf("expected 3 events, got %d", len(events))
		}

		if _, err := svc.ListEvents(context.Background(), day(20), day(10), principal); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for inverted range, got %v", err)
		}
	})

	t.Run("list is scoped to the principal's school", func(t *testing.T) {
		store := newFakeCalendarStore()
		svc := NewCalendarService(store)

		if _, err := svc.CreateEvent(context.Background(), eventInput(coordinator(schoolID))); err != nil {
			t.Fatalf("create event: %v", err)
		}

		other := coordinator(uuid.New())
		events, err := svc.ListEvents(context.Background(),
			time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
			other,
		)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(events) != 0 {
			t.Fatalf("expected no events for another school, got %d", len(events))
		}
	})

	t.Run("update rewrites the event", func(t *testing.T) {
		store := newFakeCalendarStore()
		svc := NewCalendarService(store)
		principal := coordinator(schoolID)

		event, err := svc.CreateEvent(context.Background(), eventInput(principal))
		if err != nil {
			t.Fatalf("create event: %v", err)
		}

		input := eventInput(principal)
		input.Title = "Campanha de Vacinação"
		input.StartAt = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		input.EndAt = time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)

		updated, err := svc.UpdateEvent(context.Background(), event.ID, input)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.Title != "Campanha de Vacinação" {
			t.Fatalf("expected title updated, got %s", updated.Title)
		}
		if stored := store.events[event.ID]; !stored.StartAt.Equal(input.StartAt) {
			t.Fatalf("expected stored start %s, got %s", input.StartAt, stored.StartAt)
		}
	})

	t.Run("another school's event is out of reach", func(t *testing.T) {
		store := newFakeCalendarStore()
		svc := NewCalendarService(store)

		event, err := svc.CreateEvent(context.Background(), eventInput(coordinator(schoolID)))
		if err != nil {
			t.Fatalf("create event: %v", err)
		}

		outsider := coordinator(uuid.New())
		if _, err := svc.UpdateEvent(context.Background(), event.ID, eventInput(outsider)); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied on update, got %v", err)
		}
		if err := svc.DeleteEvent(context.Background(), event.ID, outsider); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied on delete, got %v", err)
		}
	})

	t.Run("delete removes the event", func(t *testing.T) {
		store := newFakeCalendarStore()
		svc := NewCalendarService(store)
		principal := coordinator(schoolID)

		event, err := svc.CreateEvent(context.Background(), eventInput(principal))
		if err != nil {
			t.Fatalf("create event: %v", err)
		}
		if err := svc.DeleteEvent(context.Background(), event.ID, principal); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(store.events) != 0 {
			t.Fatalf("expected event removed")
		}
		if err := svc.DeleteEvent(context.Background(), event.ID, principal); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
