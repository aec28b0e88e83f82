package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) CreateSession(ctx context.Context, session model.AttendanceSession) (*model.AttendanceSession, error) {
	saved := session
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row struct {
			ID        uuid.UUID
			CreatedAt time.Time
		}
		err := tx.Raw(`
			INSERT INTO attendance_sessions (school_id, class_name, subject, teacher_id, date)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id, created_at
		`, session.SchoolID, session.ClassName, session.Subject, session.TeacherID, session.Date).Scan(&row).Error
		if err != nil {
			return err
		}
		saved.ID = row.ID
		saved.CreatedAt = row.CreatedAt

		for i := range saved.Records {
			record := &saved.Records[i]
			record.SessionID = saved.ID
			err := tx.Raw(`
				INSERT INTO attendance_records (session_id, student_name, status, note)
				VALUES (?, ?, ?, ?)
				RETURNING id
			`, record.SessionID, record.StudentName, record.Status, record.Note).Scan(&record.ID).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *AttendanceRepository) GetSession(ctx context.Context, id uuid.UUID) (*model.AttendanceSession, error) {
	var session model.AttendanceSession
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, school_id, class_name, subject, teacher_id, date, created_at
		FROM attendance_sessions
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&session).Error
	if err != nil {
		return nil, err
	}
	if session.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	err = r.db.WithContext(ctx).Raw(`
		SELECT id, session_id, student_name, status, note
		FROM attendance_records
		WHERE session_id = ?
		ORDER BY student_name ASC
	`, id).Scan(&session.Records).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *AttendanceRepository) ListSessions(ctx context.Context, schoolID uuid.UUID, from, to time.Time) ([]model.AttendanceSession, error) {
	var sessions []model.AttendanceSession
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, school_id, class_name, subject, teacher_id, date, created_at
		FROM attendance_sessions
		WHERE school_id = ? AND date >= ? AND date < ?
		ORDER BY date DESC, class_name ASC
	`, schoolID, from, to).Scan(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *AttendanceRepository) GetRecord(ctx context.Context, id uuid.UUID) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, session_id, student_name, status, note
		FROM attendance_records
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&record).Error
	if err != nil {
		return nil, err
	}
	if record.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &record, nil
}

func (r *AttendanceRepository) UpdateRecord(ctx context.Context, id uuid.UUID, status model.AttendanceStatus, note string) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE attendance_records
		SET status = ?, note = ?
		WHERE id = ?
	`, status, note, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AttendanceRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM attendance_sessions WHERE id = ?`, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
