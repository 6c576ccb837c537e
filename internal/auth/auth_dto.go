package auth

type RegisterRequest struct {
	SchoolID   string `json:"school_id" binding:"required,uuid"`
	StudentID  string `json:"student_id" binding:"omitempty,uuid"`
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"omitempty,oneof=Student Teacher HOD Principal Admin"`
	Department string `json:"department"`
	Year       string `json:"year"`
	Sem        string `json:"sem"`
	Div        string `json:"div"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID         string `json:"id"`
	SchoolID   string `json:"school_id"`
	StudentID  string `json:"student_id,omitempty"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Year       string `json:"year,omitempty"`
	Sem        string `json:"sem,omitempty"`
	Div        string `json:"div,omitempty"`
}
