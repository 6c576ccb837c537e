package school

import (
	"time"

	"github.com/google/uuid"
)

type AccreditationType string

const (
	AccreditationTypeNAAC  AccreditationType = "NAAC"
	AccreditationTypeNBA   AccreditationType = "NBA"
	AccreditationTypeAICTE AccreditationType = "AICTE"
	AccreditationTypeUGC   AccreditationType = "UGC"
)

type Accreditation struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	Type      AccreditationType `gorm:"type:varchar(20);not null"`
	Number    string            `gorm:"type:varchar(100);not null"`
	IssuedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Accreditation) TableName() string {
	return "school_accreditations"
}
