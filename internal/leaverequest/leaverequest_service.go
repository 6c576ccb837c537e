package leaverequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"campus-portal/internal/events"
	leaverequesterrors "campus-portal/internal/leaverequest/errors"
	"campus-portal/internal/messaging/kafka"
	"campus-portal/internal/notification"
	"campus-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusReturned = "returned"

	ActionApprove  = "approve"
	ActionReject   = "reject"
	ActionReturn   = "return"
	ActionResubmit = "resubmit"
)

const dateLayout = "2006-01-02"

var leaveTypes = map[string]bool{
	"SL": true, "CL": true, "OD": true, "ML": true,
	"OTH": true, "EL": true, "LOP": true, "COH": true,
}

var approvalLevels = map[string]bool{
	"Teacher":   true,
	"HOD":       true,
	"Principal": true,
}

// DefaultApprovalFlow applies when a submission does not name its own flow.
var DefaultApprovalFlow = ApprovalFlow{"Teacher", "HOD"}

// RequesterProfile is the roster identity stamped onto a request at
// submission and immutable afterwards.
type RequesterProfile struct {
	StudentID  string
	FullName   string
	Department string
	Year       string
	Sem        string
	Div        string
}

// ApproverScope narrows which pending requests an approver sees:
// department always, year/sem/div only when the profile carries them.
type ApproverScope struct {
	Role       string
	Department string
	Year       string
	Sem        string
	Div        string
}

// ProfileResolver maps a portal user to their roster identity or
// approver scope. Wired from the auth and student modules.
//
//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type ProfileResolver interface {
	ResolveRequester(ctx context.Context, schoolID, userID string) (RequesterProfile, error)
	ResolveApprover(ctx context.Context, schoolID, userID string) (ApproverScope, error)
	// ResolveStudentAccount returns the portal account id for a roster
	// student, "" when the student has no account.
	ResolveStudentAccount(ctx context.Context, schoolID, studentID string) (string, error)
}

type Service interface {
	Submit(ctx context.Context, schoolID, actorID string, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	ApplyDecision(ctx context.Context, schoolID, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error)
	Resubmit(ctx context.Context, schoolID, actorID, id string, req ResubmitRequest) (LeaveRequestResponse, error)
	ListForApprover(ctx context.Context, schoolID, actorID string) ([]LeaveRequestResponse, error)
	ListForStudent(ctx context.Context, schoolID, studentID string) ([]LeaveRequestResponse, error)
	ListMine(ctx context.Context, schoolID, actorID string) ([]LeaveRequestResponse, error)
	GetAll(ctx context.Context, schoolID string) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, schoolID, id string) (LeaveRequestResponse, error)
	ListDecisions(ctx context.Context, schoolID, id string) ([]LeaveDecisionResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	notifier notification.Service
	profiles ProfileResolver
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	notifier notification.Service,
	profiles ProfileResolver,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outbox,
		notifier: notifier,
		profiles: profiles,
		logger:   l,
	}
}

func (s *service) Submit(ctx context.Context, schoolID, actorID string, req SubmitLeaveRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("school_id", schoolID),
		zap.String("actor_id", actorID),
		zap.String("leave_type", req.LeaveType),
	)

	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidSchoolID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}

	if !leaveTypes[req.LeaveType] {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidLeaveType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return LeaveRequestResponse{}, leaverequesterrors.ErrReasonRequired
	}

	fromDate, toDate, err := parseDateRange(req.FromDate, req.ToDate)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	flow := ApprovalFlow(req.ApprovalFlow)
	if len(flow) == 0 {
		flow = DefaultApprovalFlow
	}
	for _, level := range flow {
		if !approvalLevels[level] {
			return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidApprovalFlow
		}
	}

	profile, err := s.profiles.ResolveRequester(ctx, schoolID, actorID)
	if err != nil {
		s.logger.Warn("submit leave requester resolution failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}
	studentUUID, err := uuid.Parse(profile.StudentID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidStudentID
	}

	now := time.Now().UTC()
	lr := &LeaveRequest{
		ID:           uuid.New(),
		SchoolID:     schoolUUID,
		StudentID:    studentUUID,
		StudentName:  profile.FullName,
		Department:   profile.Department,
		Year:         profile.Year,
		Sem:          profile.Sem,
		Div:          profile.Div,
		LeaveType:    req.LeaveType,
		FromDate:     fromDate,
		ToDate:       toDate,
		DaysCount:    daysInclusive(fromDate, toDate),
		Reason:       req.Reason,
		Status:       StatusPending,
		ApprovalFlow: flow,
		CurrentLevel: flow[0],
		SubmittedAt:  now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Create(ctx, lr); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if s.outbox != nil {
		event := events.LeaveSubmittedEvent{
			EventType:   "leave_submitted",
			RequestID:   rid,
			LeaveID:     lr.ID.String(),
			SchoolID:    schoolID,
			StudentID:   lr.StudentID.String(),
			StudentName: lr.StudentName,
			LeaveType:   lr.LeaveType,
			FromDate:    lr.FromDate.Format(dateLayout),
			ToDate:      lr.ToDate.Format(dateLayout),
			DaysCount:   lr.DaysCount,
			FirstLevel:  lr.CurrentLevel,
			OccurredAt:  now,
		}
		if err := s.writeOutbox(ctx, tx, rid, lr, event.EventType, events.LeaveLifecycleTopic, event); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", lr.ID.String()),
		zap.String("current_level", lr.CurrentLevel),
		zap.Int("days_count", lr.DaysCount),
	)

	return mapToResponse(*lr), nil
}

func (s *service) ApplyDecision(ctx context.Context, schoolID, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply decision requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("action", req.Action),
	)

	if _, err := uuid.Parse(schoolID); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidSchoolID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}

	if req.Action != ActionApprove && req.Action != ActionReject && req.Action != ActionReturn {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidAction
	}
	if req.Action != ActionApprove && strings.TrimSpace(req.Remarks) == "" {
		return LeaveRequestResponse{}, leaverequesterrors.ErrRemarksRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply decision begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if lr.Status != StatusPending {
		s.logger.Warn("apply decision on non-pending request",
			zap.String("leave_id", id),
			zap.String("status", lr.Status),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidState
	}

	// A stale client may still carry the level it saw before the request
	// advanced; fail fast rather than let the guarded write miss.
	if req.SeenLevel != "" && req.SeenLevel != lr.CurrentLevel {
		return LeaveRequestResponse{}, leaverequesterrors.ErrStaleState
	}

	decidedLevel := lr.CurrentLevel
	idx := lr.ApprovalFlow.IndexOf(decidedLevel)
	if idx < 0 {
		// Broken invariant: pending request whose level left its flow.
		s.logger.Error("pending request level outside approval flow",
			zap.String("leave_id", id),
			zap.String("current_level", decidedLevel),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidState
	}

	now := time.Now().UTC()
	newStatus := lr.Status
	newLevel := lr.CurrentLevel
	switch req.Action {
	case ActionApprove:
		if idx == len(lr.ApprovalFlow)-1 {
			newStatus = StatusApproved
		} else {
			newLevel = lr.ApprovalFlow[idx+1]
		}
	case ActionReject:
		newStatus = StatusRejected
	case ActionReturn:
		newStatus = StatusReturned
	}

	rows, err := qtx.UpdateStateGuarded(ctx, id, schoolID, StatusPending, decidedLevel, map[string]interface{}{
		"status":        newStatus,
		"current_level": newLevel,
		"updated_at":    now,
	})
	if err != nil {
		s.logger.Error("apply decision guarded update failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if rows == 0 {
		s.logger.Warn("apply decision lost conditional write",
			zap.String("leave_id", id),
			zap.String("seen_level", decidedLevel),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrStaleState
	}

	decision := &LeaveDecision{
		ID:             uuid.New(),
		LeaveRequestID: lr.ID,
		SchoolID:       lr.SchoolID,
		Level:          decidedLevel,
		Action:         req.Action,
		ActorID:        actorUUID,
		Remarks:        req.Remarks,
		DecidedAt:      now,
	}
	if err := qtx.CreateDecision(ctx, decision); err != nil {
		s.logger.Error("apply decision audit persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	lr.Status = newStatus
	lr.CurrentLevel = newLevel
	lr.UpdatedAt = now

	// The roster id names the student; the portal account id is what the
	// notification feed is keyed by. A student without an account gets the
	// decision on record but no feed entry.
	studentUserID, err := s.profiles.ResolveStudentAccount(ctx, schoolID, lr.StudentID.String())
	if err != nil {
		s.logger.Warn("resolve student account failed",
			zap.String("leave_id", id),
			zap.String("student_id", lr.StudentID.String()),
			zap.Error(err),
		)
		studentUserID = ""
	}

	if s.outbox != nil {
		event := events.LeaveDecisionEvent{
			EventType:     "leave_decision",
			RequestID:     rid,
			LeaveID:       lr.ID.String(),
			SchoolID:      schoolID,
			StudentID:     lr.StudentID.String(),
			StudentUserID: studentUserID,
			StudentName:   lr.StudentName,
			Action:        req.Action,
			Level:         decidedLevel,
			ActorID:       actorID,
			Remarks:       req.Remarks,
			NewStatus:     newStatus,
			NewLevel:      newLevel,
			OccurredAt:    now,
		}
		if err := s.writeOutbox(ctx, tx, rid, lr, event.EventType, events.LeaveDecisionsTopic, event); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply decision commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	// Fire-and-forget: the transition is already durable.
	if s.notifier != nil && studentUserID != "" {
		s.notifier.NotifyDecision(ctx, schoolID, studentUserID, req.Action, decidedLevel, lr.StudentName, lr.ID.String())
	}

	s.logger.Info("apply decision success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("action", req.Action),
		zap.String("new_status", newStatus),
		zap.String("new_level", newLevel),
	)

	return mapToResponse(*lr), nil
}

func (s *service) Resubmit(ctx context.Context, schoolID, actorID, id string, req ResubmitRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("resubmit leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(schoolID); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidSchoolID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}

	if !leaveTypes[req.LeaveType] {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidLeaveType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return LeaveRequestResponse{}, leaverequesterrors.ErrReasonRequired
	}
	fromDate, toDate, err := parseDateRange(req.FromDate, req.ToDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	profile, err := s.profiles.ResolveRequester(ctx, schoolID, actorID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if lr.StudentID.String() != profile.StudentID {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotRequestOwner
	}
	if lr.Status != StatusReturned {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotReturned
	}

	// Re-enters the flow at the level that issued the return; the days
	// count is recomputed because the requester may have changed dates.
	now := time.Now().UTC()
	daysCount := daysInclusive(fromDate, toDate)
	rows, err := qtx.UpdateStateGuarded(ctx, id, schoolID, StatusReturned, lr.CurrentLevel, map[string]interface{}{
		"status":     StatusPending,
		"leave_type": req.LeaveType,
		"from_date":  fromDate,
		"to_date":    toDate,
		"days_count": daysCount,
		"reason":     req.Reason,
		"updated_at": now,
	})
	if err != nil {
		s.logger.Error("resubmit guarded update failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if rows == 0 {
		return LeaveRequestResponse{}, leaverequesterrors.ErrStaleState
	}

	decision := &LeaveDecision{
		ID:             uuid.New(),
		LeaveRequestID: lr.ID,
		SchoolID:       lr.SchoolID,
		Level:          lr.CurrentLevel,
		Action:         ActionResubmit,
		ActorID:        actorUUID,
		Remarks:        "",
		DecidedAt:      now,
	}
	if err := qtx.CreateDecision(ctx, decision); err != nil {
		s.logger.Error("resubmit audit persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	lr.Status = StatusPending
	lr.LeaveType = req.LeaveType
	lr.FromDate = fromDate
	lr.ToDate = toDate
	lr.DaysCount = daysCount
	lr.Reason = req.Reason
	lr.UpdatedAt = now

	if s.outbox != nil {
		event := events.LeaveDecisionEvent{
			EventType: "leave_resubmitted",
			RequestID: rid,
			LeaveID:   lr.ID.String(),
			SchoolID:  schoolID,
			StudentID: lr.StudentID.String(),
			// The resubmitting actor is the student's own account.
			StudentUserID: actorID,
			StudentName:   lr.StudentName,
			Action:        ActionResubmit,
			Level:         lr.CurrentLevel,
			ActorID:       actorID,
			NewStatus:     StatusPending,
			NewLevel:      lr.CurrentLevel,
			OccurredAt:    now,
		}
		if err := s.writeOutbox(ctx, tx, rid, lr, event.EventType, events.LeaveLifecycleTopic, event); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("resubmit commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("resubmit leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("current_level", lr.CurrentLevel),
	)

	return mapToResponse(*lr), nil
}

func (s *service) ListForApprover(ctx context.Context, schoolID, actorID string) ([]LeaveRequestResponse, error) {
	scope, err := s.profiles.ResolveApprover(ctx, schoolID, actorID)
	if err != nil {
		return nil, err
	}

	pending, err := s.repo.FindPendingForLevel(ctx, schoolID, scope.Role, scope.Department, scope.Year, scope.Sem, scope.Div)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.FindActedOnByActor(ctx, schoolID, actorID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(pending))
	merged := make([]LeaveRequest, 0, len(pending)+len(history))
	for _, lr := range pending {
		seen[lr.ID] = true
		merged = append(merged, lr)
	}
	for _, lr := range history {
		if !seen[lr.ID] {
			merged = append(merged, lr)
		}
	}

	return mapToListResponse(merged), nil
}

func (s *service) ListForStudent(ctx context.Context, schoolID, studentID string) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindByStudent(ctx, schoolID, studentID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) ListMine(ctx context.Context, schoolID, actorID string) ([]LeaveRequestResponse, error) {
	profile, err := s.profiles.ResolveRequester(ctx, schoolID, actorID)
	if err != nil {
		return nil, err
	}
	return s.ListForStudent(ctx, schoolID, profile.StudentID)
}

func (s *service) GetAll(ctx context.Context, schoolID string) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindAllBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, schoolID, id string) (LeaveRequestResponse, error) {
	lr, err := s.repo.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveNotFound
		}
		return LeaveRequestResponse{}, err
	}
	return mapToResponse(*lr), nil
}

func (s *service) ListDecisions(ctx context.Context, schoolID, id string) ([]LeaveDecisionResponse, error) {
	decisions, err := s.repo.FindDecisionsByRequest(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveDecisionResponse, len(decisions))
	for i, d := range decisions {
		resp[i] = LeaveDecisionResponse{
			ID:             d.ID.String(),
			LeaveRequestID: d.LeaveRequestID.String(),
			Level:          d.Level,
			Action:         d.Action,
			ActorID:        d.ActorID.String(),
			Remarks:        d.Remarks,
			DecidedAt:      d.DecidedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *service) writeOutbox(ctx context.Context, tx *sql.Tx, rid string, lr *LeaveRequest, eventType, topic string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   lr.ID.String(),
		EventType:     eventType,
		Topic:         topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("outbox persist failed",
			zap.String("leave_id", lr.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Filter narrows an already retrieved result set in memory. Pure; the
// input slice is never mutated.
func Filter(requests []LeaveRequestResponse, opts FilterOptions) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	search := strings.ToLower(strings.TrimSpace(opts.Search))
	for _, lr := range requests {
		if opts.Status != "" && lr.Status != opts.Status {
			continue
		}
		if opts.Department != "" && !strings.EqualFold(lr.Department, opts.Department) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(lr.StudentName), search) &&
			!strings.Contains(strings.ToLower(lr.ID), search) &&
			!strings.Contains(strings.ToLower(lr.Reason), search) {
			continue
		}
		out = append(out, lr)
	}
	return out
}

func parseDateRange(from, to string) (time.Time, time.Time, error) {
	fromDate, err := time.Parse(dateLayout, from)
	if err != nil {
		return time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	toDate, err := time.Parse(dateLayout, to)
	if err != nil {
		return time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	if fromDate.After(toDate) {
		return time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidDateRange
	}
	return fromDate, toDate, nil
}

func daysInclusive(from, to time.Time) int {
	return int(to.Sub(from).Hours()/24) + 1
}

func mapToResponse(lr LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           lr.ID.String(),
		SchoolID:     lr.SchoolID.String(),
		StudentID:    lr.StudentID.String(),
		StudentName:  lr.StudentName,
		Department:   lr.Department,
		Year:         lr.Year,
		Sem:          lr.Sem,
		Div:          lr.Div,
		LeaveType:    lr.LeaveType,
		FromDate:     lr.FromDate.Format(dateLayout),
		ToDate:       lr.ToDate.Format(dateLayout),
		DaysCount:    lr.DaysCount,
		Reason:       lr.Reason,
		Status:       lr.Status,
		ApprovalFlow: lr.ApprovalFlow,
		CurrentLevel: lr.CurrentLevel,
		SubmittedAt:  lr.SubmittedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, lr := range requests {
		resp[i] = mapToResponse(lr)
	}
	return resp
}
