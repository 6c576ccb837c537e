package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID  uuid.UUID  `gorm:"type:uuid;not null;index"` // multi-tenancy
	StudentID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`    // set for student accounts
	Name      string     `gorm:"type:varchar(255);not null"`
	Email     string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string     `gorm:"type:varchar(255);not null"`
	Role      string     `gorm:"type:varchar(50);not null;default:'Student'"`

	// Academic scope for approvers and students; drives leave-request
	// visibility (department always, year/sem/div when set).
	Department string `gorm:"type:varchar(100)"`
	Year       string `gorm:"type:varchar(10)"`
	Sem        string `gorm:"type:varchar(10)"`
	Div        string `gorm:"type:varchar(10)"`

	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
