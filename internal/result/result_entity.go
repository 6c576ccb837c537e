package result

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Result struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SchoolID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_result_exam;column:school_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_result_exam"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_result_exam"`
	ExamName  string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_result_exam"`
	Marks     float64   `gorm:"type:numeric(6,2);not null"`
	MaxMarks  float64   `gorm:"type:numeric(6,2);not null;default:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Result) TableName() string {
	return "results"
}
