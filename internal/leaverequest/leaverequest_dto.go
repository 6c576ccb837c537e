package leaverequest

type SubmitLeaveRequest struct {
	LeaveType    string   `json:"leave_type" binding:"required,oneof=SL CL OD ML OTH EL LOP COH"`
	FromDate     string   `json:"from_date" binding:"required"`
	ToDate       string   `json:"to_date" binding:"required"`
	Reason       string   `json:"reason" binding:"required"`
	ApprovalFlow []string `json:"approval_flow"`
}

type DecisionRequest struct {
	Action  string `json:"action" binding:"required,oneof=approve reject return"`
	Remarks string `json:"remarks"`
	// Level the approver saw when deciding; guards against acting on a
	// request that advanced underneath them.
	SeenLevel string `json:"seen_level"`
}

type ResubmitRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=SL CL OD ML OTH EL LOP COH"`
	FromDate  string `json:"from_date" binding:"required"`
	ToDate    string `json:"to_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type LeaveRequestResponse struct {
	ID           string   `json:"id"`
	SchoolID     string   `json:"school_id"`
	StudentID    string   `json:"student_id"`
	StudentName  string   `json:"student_name"`
	Department   string   `json:"department"`
	Year         string   `json:"year,omitempty"`
	Sem          string   `json:"sem,omitempty"`
	Div          string   `json:"div,omitempty"`
	LeaveType    string   `json:"leave_type"`
	FromDate     string   `json:"from_date"`
	ToDate       string   `json:"to_date"`
	DaysCount    int      `json:"days_count"`
	Reason       string   `json:"reason"`
	Status       string   `json:"status"`
	ApprovalFlow []string `json:"approval_flow"`
	CurrentLevel string   `json:"current_level"`
	SubmittedAt  string   `json:"submitted_at"`
}

type LeaveDecisionResponse struct {
	ID             string `json:"id"`
	LeaveRequestID string `json:"leave_request_id"`
	Level          string `json:"level"`
	Action         string `json:"action"`
	ActorID        string `json:"actor_id"`
	Remarks        string `json:"remarks,omitempty"`
	DecidedAt      string `json:"decided_at"`
}

// FilterOptions drives the pure in-memory Filter over an already
// retrieved result set.
type FilterOptions struct {
	Status     string
	Department string
	Search     string
}
