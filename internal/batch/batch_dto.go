package batch

type CreateBatchRequest struct {
	Name           string `json:"name" binding:"required"`
	Department     string `json:"department" binding:"required"`
	Year           string `json:"year" binding:"required"`
	Sem            string `json:"sem" binding:"required"`
	Div            string `json:"div"`
	ClassTeacherID string `json:"class_teacher_id" binding:"omitempty,uuid"`
}

type UpdateBatchRequest struct {
	Name           string `json:"name" binding:"required"`
	Department     string `json:"department" binding:"required"`
	Year           string `json:"year" binding:"required"`
	Sem            string `json:"sem" binding:"required"`
	Div            string `json:"div"`
	ClassTeacherID string `json:"class_teacher_id" binding:"omitempty,uuid"`
}

type BatchResponse struct {
	ID             string `json:"id"`
	SchoolID       string `json:"school_id"`
	Name           string `json:"name"`
	Department     string `json:"department"`
	Year           string `json:"year"`
	Sem            string `json:"sem"`
	Div            string `json:"div,omitempty"`
	ClassTeacherID string `json:"class_teacher_id,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
