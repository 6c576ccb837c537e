package student

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SchoolID   uuid.UUID `gorm:"type:uuid;not null;index"`
	RollNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_student_roll"`
	FullName   string    `gorm:"type:varchar(255);not null"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex:uq_student_email"`

	// Academic placement; leave requests copy these at submission so
	// approver scoping works even if the student moves later.
	Department string `gorm:"type:varchar(100);not null;index"`
	Year       string `gorm:"type:varchar(10);not null"`
	Sem        string `gorm:"type:varchar(10);not null"`
	Div        string `gorm:"type:varchar(10);not null"`

	BatchID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Student) TableName() string {
	return "students"
}
