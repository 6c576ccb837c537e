package batch

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Batch struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SchoolID   uuid.UUID `gorm:"type:uuid;not null;column:school_id"`
	Name       string    `gorm:"size:255;not null"`
	Department string    `gorm:"size:100;not null"`
	Year       string    `gorm:"size:10;not null"`
	Sem        string    `gorm:"size:10;not null"`
	Div        string    `gorm:"size:10"`

	// Class teacher owns the batch's attendance sheet.
	ClassTeacherID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Batch) TableName() string {
	return "batches"
}
