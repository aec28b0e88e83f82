package model

import (
	"time"

	"github.com/google/uuid"
)

type CaseStatus string

const (
	CaseStatusOpen       CaseStatus = "OPEN"
	CaseStatusInProgress CaseStatus = "IN_PROGRESS"
	CaseStatusResolved   CaseStatus = "RESOLVED"
	CaseStatusArchived   CaseStatus = "ARCHIVED"
)

type MediationCase struct {
	ID          uuid.UUID
	SchoolID    uuid.UUID
	StudentName string
	Reporter    string
	Category    string
	Summary     string
	Status      CaseStatus
	AssigneeID  *uuid.UUID
	OpenedAt    time.Time
	UpdatedAt   time.Time
	ClosedAt    *time.Time
	Notes       []CaseNote `gorm:"-"`
}

type CaseNote struct {
	ID        uuid.UUID
	CaseID    uuid.UUID
	AuthorID  uuid.UUID
	Text      string
	CreatedAt time.Time
}
