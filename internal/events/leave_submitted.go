package events

import "time"

const LeaveLifecycleTopic = "campus.leave.lifecycle.v1"

type LeaveSubmittedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	LeaveID     string    `json:"leave_id"`
	SchoolID    string    `json:"school_id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	LeaveType   string    `json:"leave_type"`
	FromDate    string    `json:"from_date"`
	ToDate      string    `json:"to_date"`
	DaysCount   int       `json:"days_count"`
	FirstLevel  string    `json:"first_level"`
	OccurredAt  time.Time `json:"occurred_at"`
}
