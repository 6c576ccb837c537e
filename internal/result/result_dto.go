package result

type CreateResultRequest struct {
	StudentID string  `json:"student_id" binding:"required,uuid"`
	SubjectID string  `json:"subject_id" binding:"required,uuid"`
	ExamName  string  `json:"exam_name" binding:"required"`
	Marks     float64 `json:"marks" binding:"gte=0"`
	MaxMarks  float64 `json:"max_marks" binding:"gt=0"`
}

type UpdateResultRequest struct {
	Marks    float64 `json:"marks" binding:"gte=0"`
	MaxMarks float64 `json:"max_marks" binding:"gt=0"`
}

type ResultResponse struct {
	ID        string  `json:"id"`
	SchoolID  string  `json:"school_id"`
	StudentID string  `json:"student_id"`
	SubjectID string  `json:"subject_id"`
	ExamName  string  `json:"exam_name"`
	Marks     float64 `json:"marks"`
	MaxMarks  float64 `json:"max_marks"`
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportSummary struct {
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
