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

type fakeAttendanceStore struct {
	sessions map[uuid.UUID]model.AttendanceSession
	records  map[uuid.UUID]model.AttendanceRecord
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{
		sessions: make(map[uuid.UUID]model.AttendanceSession),
		records:  make(map[uuid.UUID]model.AttendanceRecord),
	}
}

func (f *fakeAttendanceStore) CreateSession(_ context.Context, session model.AttendanceSession) (*model.AttendanceSession, error) {
	session.ID = uuid.New()
	for i := range session.Records {
		session.Records[i].ID = uuid.New()
		session.Records[i].SessionID = session.ID
		f.records[session.Records[i].ID] = session.Records[i]
	}
	f.sessions[session.ID] = session
	return &session, nil
}

func (f *fakeAttendanceStore) GetSession(_ context.Context, id uuid.UUID) (*model.AttendanceSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &session, nil
}

func (f *fakeAttendanceStore) ListSessions(_ context.Context, schoolID uuid.UUID, from, to time.Time) ([]model.AttendanceSession, error) {
	var sessions []model.AttendanceSession
	for _, session := range f.sessions {
		if session.SchoolID == schoolID && !session.Date.Before(from) && session.Date.Before(to) {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

func (f *fakeAttendanceStore) GetRecord(_ context.Context, id uuid.UUID) (*model.AttendanceRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &record, nil
}

func (f *fakeAttendanceStore) UpdateRecord(_ context.Context, id uuid.UUID, status model.AttendanceStatus, note string) error {
	record, ok := f.records[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	record.Status = status
	record.Note = note
	f.records[id] = record
	return nil
}

func (f *fakeAttendanceStore) DeleteSession(_ context.Context, id uuid.UUID) error {
	if _, ok := f.sessions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.sessions, id)
	return nil
}

func TestAttendanceService(t *testing.T) {
	t.Parallel()

	schoolID := uuid.New()
	teacher := model.Principal{UserID: uuid.New(), SchoolID: schoolID, Role: model.RoleTeacher}

	createSession := func(t *testing.T, svc *AttendanceService, principal model.Principal) *model.AttendanceSession {
		t.Helper()
		session, err := svc.CreateSession(context.Background(), CreateSessionInput{
			ClassName: "5º ano B",
			Subject:   "Matemática",
			Date:      testNow,
			Records: []AttendanceRecordInput{
				{StudentName: "Ana Clara", Status: model.AttendancePresent},
				{StudentName: "Bruno", Status: model.AttendanceAbsent, Note: "atestado pendente"},
			},
			Principal: principal,
		})
		if err != nil {
			t.Fatalf("create session: %v", err)
		}
		return session
	}

	t.Run("creates session owned by the teacher", func(t *testing.T) {
		store := newFakeAttendanceStore()
		svc := NewAttendanceService(store)

		session := createSession(t, svc, teacher)
		if session.TeacherID != teacher.UserID {
			t.Fatalf("expected session owned by teacher")
		}
		if len(session.Records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(session.Records))
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		store := newFakeAttendanceStore()
		svc := NewAttendanceService(store)

		_, err := svc.CreateSession(context.Background(), CreateSessionInput{
			ClassName: "5º ano B",
			Subject:   "Matemática",
			Date:      testNow,
			Records:   []AttendanceRecordInput{{StudentName: "Ana", Status: "LATE"}},
			Principal: teacher,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("teacher cannot touch another teacher's session", func(t *testing.T) {
		store := newFakeAttendanceStore()
		svc := NewAttendanceService(store)
		session := createSession(t, svc, teacher)

		other := model.Principal{UserID: uuid.New(), SchoolID: schoolID, Role: model.RoleTeacher}
		if err := svc.DeleteSession(context.Background(), session.ID, other); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}

		// A coordinator from the same school may.
		if err := svc.DeleteSession(context.Background(), session.ID, coordinator(schoolID)); err != nil {
			t.Fatalf("expected coordinator delete to pass, got %v", err)
		}
	})

	t.Run("updates a record in place", func(t *testing.T) {
		store := newFakeAttendanceStore()
		svc := NewAttendanceService(store)
		session := createSession(t, svc, teacher)

		recordID := session.Records[1].ID
		if err := svc.UpdateRecord(context.Background(), recordID, model.AttendanceJustified, "atestado recebido", teacher); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := store.records[recordID]; got.Status != model.AttendanceJustified || got.Note != "atestado recebido" {
			t.Fatalf("expected record updated, got %+v", got)
		}
	})
}
