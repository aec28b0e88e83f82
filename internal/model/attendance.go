package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "PRESENT"
	AttendanceAbsent    AttendanceStatus = "ABSENT"
	AttendanceJustified AttendanceStatus = "JUSTIFIED"
)

type AttendanceSession struct {
	ID        uuid.UUID
	SchoolID  uuid.UUID
	ClassName string
	Subject   string
	TeacherID uuid.UUID
	Date      time.Time
	CreatedAt time.Time
	Records   []AttendanceRecord `gorm:"-"`
}

type AttendanceRecord struct {
	ID          uuid.UUID
	SessionID   uuid.UUID
	StudentName string
	Status      AttendanceStatus
	Note        string
}
