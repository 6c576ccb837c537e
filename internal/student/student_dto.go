package student

type CreateStudentRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	RollNumber string `json:"roll_number"`
	Department string `json:"department" binding:"required"`
	Year       string `json:"year" binding:"required"`
	Sem        string `json:"sem" binding:"required"`
	Div        string `json:"div" binding:"required"`
	BatchID    string `json:"batch_id" binding:"omitempty,uuid"`
}

type UpdateStudentRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department" binding:"required"`
	Year       string `json:"year" binding:"required"`
	Sem        string `json:"sem" binding:"required"`
	Div        string `json:"div" binding:"required"`
	BatchID    string `json:"batch_id" binding:"omitempty,uuid"`
}

type StudentResponse struct {
	ID         string `json:"id"`
	SchoolID   string `json:"school_id"`
	RollNumber string `json:"roll_number"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Year       string `json:"year"`
	Sem        string `json:"sem"`
	Div        string `json:"div"`
	BatchID    string `json:"batch_id,omitempty"`
}
