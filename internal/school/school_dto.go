package school

import "time"

type SchoolResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	AcademicYear string `json:"academic_year"`
	IsActive     bool   `json:"is_active"`
}

type UpdateSchoolRequest struct {
	Name         string `json:"name"`
	AcademicYear string `json:"academic_year"`
	IsActive     *bool  `json:"is_active"`
}

type UpsertAccreditationRequest struct {
	Type     AccreditationType `json:"type" binding:"required"`
	Number   string            `json:"number" binding:"required"`
	IssuedAt *time.Time        `json:"issued_at,omitempty"`
}

type AccreditationResponse struct {
	ID        string            `json:"id"`
	Type      AccreditationType `json:"type"`
	Number    string            `json:"number"`
	IssuedAt  *time.Time        `json:"issued_at,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
