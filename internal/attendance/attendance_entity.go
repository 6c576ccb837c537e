package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Attendance struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SchoolID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_mark;column:school_id"`
	SubjectID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_mark"`
	BatchID        uuid.UUID `gorm:"type:uuid;not null;index"`
	StudentID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_mark"`
	AttendanceDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_mark"`
	Status         string    `gorm:"type:varchar(20);not null"`
	MarkedBy       uuid.UUID `gorm:"type:uuid;not null"`
	Notes          *string   `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Attendance) TableName() string {
	return "attendance_marks"
}
