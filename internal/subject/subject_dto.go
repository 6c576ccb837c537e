package subject

type CreateSubjectRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	BatchID   string `json:"batch_id" binding:"required,uuid"`
	Credits   int    `json:"credits" binding:"gte=0"`
	TeacherID string `json:"teacher_id" binding:"omitempty,uuid"`
}

type UpdateSubjectRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	BatchID   string `json:"batch_id" binding:"required,uuid"`
	Credits   int    `json:"credits" binding:"gte=0"`
	TeacherID string `json:"teacher_id" binding:"omitempty,uuid"`
}

type SubjectResponse struct {
	ID        string `json:"id"`
	SchoolID  string `json:"school_id"`
	BatchID   string `json:"batch_id"`
	BatchName string `json:"batch_name,omitempty"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Credits   int    `json:"credits"`
	TeacherID string `json:"teacher_id,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
