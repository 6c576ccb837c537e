package events

import "time"

const StudentLifecycleTopic = "campus.student.lifecycle.v1"

type StudentEnrolledEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	StudentID  string    `json:"student_id"`
	SchoolID   string    `json:"school_id"`
	Department string    `json:"department"`
	OccurredAt time.Time `json:"occurred_at"`
}
