package attendance

type MarkEntry struct {
	StudentID string  `json:"student_id" binding:"required,uuid"`
	Status    string  `json:"status" binding:"required,oneof=present absent on_leave"`
	Notes     *string `json:"notes"`
}

type MarkAttendanceRequest struct {
	SubjectID string      `json:"subject_id" binding:"required,uuid"`
	BatchID   string      `json:"batch_id" binding:"required,uuid"`
	Date      string      `json:"date" binding:"required"`
	Entries   []MarkEntry `json:"entries" binding:"required,min=1,dive"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	SchoolID       string  `json:"school_id"`
	SubjectID      string  `json:"subject_id"`
	BatchID        string  `json:"batch_id"`
	StudentID      string  `json:"student_id"`
	AttendanceDate string  `json:"attendance_date"`
	Status         string  `json:"status"`
	MarkedBy       string  `json:"marked_by"`
	Notes          *string `json:"notes,omitempty"`
}

type StudentSummaryResponse struct {
	StudentID  string  `json:"student_id"`
	SubjectID  string  `json:"subject_id,omitempty"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	OnLeave    int     `json:"on_leave"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}
