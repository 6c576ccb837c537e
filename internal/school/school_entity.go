package school

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type School struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string          `gorm:"type:varchar(150);not null"`
	Email          string          `gorm:"type:varchar(255);index"`
	AcademicYear   string          `gorm:"type:varchar(20)"`
	IsActive       bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time       `gorm:"not null;default:now()"`
	UpdatedAt      time.Time       `gorm:"not null;default:now()"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
	Accreditations []Accreditation `gorm:"foreignKey:SchoolID"`
}

func (School) TableName() string {
	return "schools"
}
