package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
)

type CalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) CreateEvent(ctx context.Context, event model.CampaignEvent) (*model.CampaignEvent, error) {
	saved := event
	var row struct {
		ID        uuid.UUID
		CreatedAt time.Time
	}
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO campaign_events (school_id, title, description, category, start_at, end_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, created_at
	`, event.SchoolID, event.Title, event.Description, event.Category, event.StartAt, event.EndAt).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	saved.ID = row.ID
	saved.CreatedAt = row.CreatedAt
	return &saved, nil
}

// ListEvents returns events whose period overlaps [from, to).
func (r *CalendarRepository) ListEvents(ctx context.Context, schoolID uuid.UUID, from, to time.Time) ([]model.CampaignEvent, error) {
	var events []model.CampaignEvent
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, school_id, title, description, category, start_at, end_at, created_at
		FROM campaign_events
		WHERE school_id = ? AND start_at < ? AND end_at >= ?
		ORDER BY start_at ASC
	`, schoolID, to, from).Scan(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *CalendarRepository) GetEvent(ctx context.Context, id uuid.UUID) (*model.CampaignEvent, error) {
	var event model.CampaignEvent
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, school_id, title, description, category, start_at, end_at, created_at
		FROM campaign_events
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&event).Error
	if err != nil {
		return nil, err
	}
	if event.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &event, nil
}

func (r *CalendarRepository) UpdateEvent(ctx context.Context, event model.CampaignEvent) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE campaign_events
		SET title = ?, description = ?, category = ?, start_at = ?, end_at = ?
		WHERE id = ?
	`, event.Title, event.Description, event.Category, event.StartAt, event.EndAt, event.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CalendarRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM campaign_events WHERE id = ?`, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
