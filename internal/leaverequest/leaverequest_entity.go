package leaverequest

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ApprovalFlow is the ordered list of approval levels a request travels,
// fixed at submission. Stored as jsonb.
type ApprovalFlow []string

func (f ApprovalFlow) Value() (driver.Value, error) {
	return json.Marshal(f)
}

func (f *ApprovalFlow) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	case nil:
		*f = nil
		return nil
	default:
		return errors.New("unsupported approval flow column type")
	}
}

// IndexOf returns the position of level in the flow, or -1.
func (f ApprovalFlow) IndexOf(level string) int {
	for i, l := range f {
		if l == level {
			return i
		}
	}
	return -1
}

type LeaveRequest struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	SchoolID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_school_status;column:school_id"`

	// Requester identity, immutable after submission.
	StudentID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_student"`
	StudentName string    `gorm:"type:varchar(255);not null"`
	Department  string    `gorm:"type:varchar(100);not null;index:idx_leave_requests_scope"`
	Year        string    `gorm:"type:varchar(10);index:idx_leave_requests_scope"`
	Sem         string    `gorm:"type:varchar(10);index:idx_leave_requests_scope"`
	Div         string    `gorm:"type:varchar(10);index:idx_leave_requests_scope"`

	LeaveType string    `gorm:"type:varchar(10);not null"`
	FromDate  time.Time `gorm:"type:date;not null"`
	ToDate    time.Time `gorm:"type:date;not null"`
	DaysCount int       `gorm:"type:int;not null"`
	Reason    string    `gorm:"type:text;not null"`

	Status       string       `gorm:"type:varchar(20);not null;default:'pending';index:idx_leave_requests_school_status"`
	ApprovalFlow ApprovalFlow `gorm:"type:jsonb;not null"`
	CurrentLevel string       `gorm:"type:varchar(50);not null;index"`

	SubmittedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveDecision is the audit row written for every workflow transition.
// Rows are never updated or deleted.
type LeaveDecision struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveRequestID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_decisions_request"`
	SchoolID       uuid.UUID `gorm:"type:uuid;not null;column:school_id"`
	Level          string    `gorm:"type:varchar(50);not null"`
	Action         string    `gorm:"type:varchar(20);not null"`
	ActorID        uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_decisions_actor"`
	Remarks        string    `gorm:"type:text"`
	DecidedAt      time.Time `gorm:"not null"`
}

func (LeaveDecision) TableName() string {
	return "leave_decisions"
}
