package subject

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subject struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SchoolID  uuid.UUID      `gorm:"type:uuid;not null;column:school_id"`
	BatchID   uuid.UUID      `gorm:"type:uuid;not null"`
	Batch     *SubjectBatch  `gorm:"foreignKey:BatchID;references:ID"`
	Name      string         `gorm:"size:255;not null"`
	Code      string         `gorm:"size:50;not null;uniqueIndex:uq_subject_code"`
	Credits   int            `gorm:"not null;default:0"`
	TeacherID *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Subject) TableName() string {
	return "subjects"
}

type SubjectBatch struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (SubjectBatch) TableName() string {
	return "batches"
}
