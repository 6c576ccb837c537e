package events

import "time"

const LeaveDecisionsTopic = "campus.leave.decisions.v1"

// LeaveDecisionEvent is emitted for every workflow transition: approve at
// each level, reject, return, and resubmit.
type LeaveDecisionEvent struct {
	EventType string `json:"event_type"`
	RequestID string `json:"request_id,omitempty"`
	LeaveID   string `json:"leave_id"`
	SchoolID  string `json:"school_id"`
	StudentID string `json:"student_id"`
	// StudentUserID is the portal account linked to the roster student,
	// empty when no account exists yet. Notification delivery keys on it.
	StudentUserID string    `json:"student_user_id,omitempty"`
	StudentName   string    `json:"student_name"`
	Action        string    `json:"action"`
	Level         string    `json:"level"`
	ActorID       string    `json:"actor_id"`
	Remarks       string    `json:"remarks,omitempty"`
	NewStatus     string    `json:"new_status"`
	NewLevel      string    `json:"new_level,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
