package model

import (
	"time"

	"github.com/google/uuid"
)

type CampaignEvent struct {
	ID          uuid.UUID
	SchoolID    uuid.UUID
	Title       string
	Description string
	Category    string
	StartAt     time.Time
	EndAt       time.Time
	CreatedAt   time.Time
}
