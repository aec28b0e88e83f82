package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
)

type MediationRepository struct {
	db *gorm.DB
}

func NewMediationRepository(db *gorm.DB) *MediationRepository {
	return &MediationRepository{db: db}
}

func (r *MediationRepository) CreateCase(ctx context.Context, c model.MediationCase) (*model.MediationCase, error) {
	saved := c
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO mediation_cases (school_id, student_name, reporter, category, summary, status, assignee_id, opened_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		c.SchoolID,
		c.StudentName,
		c.Reporter,
		c.Category,
		c.Summary,
		c.Status,
		c.AssigneeID,
		c.OpenedAt,
		c.UpdatedAt,
	).Scan(&saved.ID).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *MediationRepository) GetCase(ctx context.Context, id uuid.UUID) (*model.MediationCase, error) {
	var c model.MediationCase
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, school_id, student_name, reporter, category, summary, status, assignee_id, opened_at, updated_at, closed_at
		FROM mediation_cases
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	err = r.db.WithContext(ctx).Raw(`
		SELECT id, case_id, author_id, text, created_at
		FROM case_notes
		WHERE case_id = ?
		ORDER BY created_at ASC
	`, id).Scan(&c.Notes).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MediationRepository) ListCases(ctx context.Context, schoolID uuid.UUID, status *model.CaseStatus) ([]model.MediationCase, error) {
	query := `
		SELECT id, school_id, student_name, reporter, category, summary, status, assignee_id, opened_at, updated_at, closed_at
		FROM mediation_cases
		WHERE school_id = ?
	`
	args := []interface{}{schoolID}
	if status != nil {
		query += " AND status = ?"
		args = append(args, *status)
	}
	query += " ORDER BY opened_at DESC"

	var cases []model.MediationCase
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&cases).Error; err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *MediationRepository) AddNote(ctx context.Context, note model.CaseNote) (*model.CaseNote, error) {
	saved := note
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO case_notes (case_id, author_id, text, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`, note.CaseID, note.AuthorID, note.Text, note.CreatedAt).Scan(&saved.ID).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *MediationRepository) UpdateCaseStatus(ctx context.Context, c model.MediationCase) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE mediation_cases
		SET status = ?, assignee_id = ?, updated_at = ?, closed_at = ?
		WHERE id = ?
	`, c.Status, c.AssigneeID, c.UpdatedAt, c.ClosedAt, c.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
