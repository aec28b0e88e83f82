package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
)

type AttendanceStore interface {
	CreateSession(ctx context.Context, session model.AttendanceSession) (*model.AttendanceSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*model.AttendanceSession, error)
	ListSessions(ctx context.Context, schoolID uuid.UUID, from, to time.Time) ([]model.AttendanceSession, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*model.AttendanceRecord, error)
	UpdateRecord(ctx context.Context, id uuid.UUID, status model.AttendanceStatus, note string) error
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

type AttendanceService struct {
	store AttendanceStore
}

func NewAttendanceService(store AttendanceStore) *AttendanceService {
	return &AttendanceService{store: store}
}

type AttendanceRecordInput struct {
	StudentName string
	Status      model.AttendanceStatus
	Note        string
}

type CreateSessionInput struct {
	ClassName string
	Subject   string
	Date      time.Time
	Records   []AttendanceRecordInput
	Principal model.Principal
}

func (s *AttendanceService) CreateSession(ctx context.Context, input CreateSessionInput) (*model.AttendanceSession, error) {
	if input.Principal.IsCounselor() {
		return nil, ErrPermissionDenied
	}
	if input.ClassName == "" || input.Subject == "" {
		return nil, fmt.Errorf("%w: class_name and subject are required", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if len(input.Records) == 0 {
		return nil, fmt.Errorf("%w: at least one record is required", ErrInvalidInput)
	}

	records := make([]model.AttendanceRecord, 0, len(input.Records))
	for _, record := range input.Records {
		if record.StudentName == "" {
			return nil, fmt.Errorf("%w: student_name is required", ErrInvalidInput)
		}
		if !validAttendanceStatus(record.Status) {
			return nil, fmt.Errorf("%w: invalid attendance status %q", ErrInvalidInput, record.Status)
		}
		records = append(records, model.AttendanceRecord{
			StudentName: record.StudentName,
			Status:      record.Status,
			Note:        record.Note,
		})
	}

	return s.store.CreateSession(ctx, model.AttendanceSession{
		SchoolID:  input.Principal.SchoolID,
		ClassName: input.ClassName,
		Subject:   input.Subject,
		TeacherID: input.Principal.UserID,
		Date:      dateOnly(input.Date),
		Records:   records,
	})
}

func (s *AttendanceService) GetSession(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.AttendanceSession, error) {
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	if session.SchoolID != principal.SchoolID {
		return nil, ErrPermissionDenied
	}
	return session, nil
}

func (s *AttendanceService) ListSessions(ctx context.Context, from, to time.Time, principal model.Principal) ([]model.AttendanceSession, error) {
	if from.IsZero() || to.IsZero() || from.After(to) {
		return nil, fmt.Errorf("%w: invalid date range", ErrInvalidInput)
	}
	return s.store.ListSessions(ctx, principal.SchoolID, dateOnly(from), dateOnly(to).Add(24*time.Hour))
}

func (s *AttendanceService) UpdateRecord(ctx context.Context, recordID uuid.UUID, status model.AttendanceStatus, note string, principal model.Principal) error {
	if !validAttendanceStatus(status) {
		return fmt.Errorf("%w: invalid attendance status %q", ErrInvalidInput, status)
	}

	record, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return mapLedgerError(err)
	}
	if err := s.authorizeSession(ctx, record.SessionID, principal); err != nil {
		return err
	}
	return mapLedgerError(s.store.UpdateRecord(ctx, recordID, status, note))
}

func (s *AttendanceService) DeleteSession(ctx context.Context, id uuid.UUID, principal model.Principal) error {
	if err := s.authorizeSession(ctx, id, principal); err != nil {
		return err
	}
	return mapLedgerError(s.store.DeleteSession(ctx, id))
}

// authorizeSession lets teachers touch only their own sessions; coordinators
// and admins may touch any session in their school.
func (s *AttendanceService) authorizeSession(ctx context.Context, sessionID uuid.UUID, principal model.Principal) error {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return mapLedgerError(err)
	}
	if session.SchoolID != principal.SchoolID {
		return ErrPermissionDenied
	}
	if principal.IsTeacher() && session.TeacherID != principal.UserID {
		return ErrPermissionDenied
	}
	if principal.IsCounselor() {
		return ErrPermissionDenied
	}
	return nil
}

func validAttendanceStatus(status model.AttendanceStatus) bool {
	switch status {
	case model.AttendancePresent, model.AttendanceAbsent, model.AttendanceJustified:
		return true
	default:
		return false
	}
}
