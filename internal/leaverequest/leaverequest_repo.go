package leaverequest

import (
	"context"
	"database/sql"

	"campus-portal/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindAllBySchool(ctx context.Context, schoolID string) ([]LeaveRequest, error)
	FindByIDAndSchool(ctx context.Context, schoolID, id string) (*LeaveRequest, error)
	FindByStudent(ctx context.Context, schoolID, studentID string) ([]LeaveRequest, error)
	FindPendingForLevel(ctx context.Context, schoolID, level, department, year, sem, div string) ([]LeaveRequest, error)
	FindActedOnByActor(ctx context.Context, schoolID, actorID string) ([]LeaveRequest, error)
	// UpdateStateGuarded performs the conditional write: the row is only
	// updated when status and current_level still match what the actor
	// saw. Returns the number of rows touched.
	UpdateStateGuarded(ctx context.Context, id, schoolID, seenStatus, seenLevel string, fields map[string]interface{}) (int64, error)
	CreateDecision(ctx context.Context, d *LeaveDecision) error
	FindDecisionsByRequest(ctx context.Context, schoolID, requestID string) ([]LeaveDecision, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("submitted_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		First(&lr, "id = ?", id).Error
	return &lr, err
}

func (r *repository) FindByStudent(ctx context.Context, schoolID, studentID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindPendingForLevel(ctx context.Context, schoolID, level, department, year, sem, div string) ([]LeaveRequest, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("status = ?", StatusPending).
		Where("current_level = ?", level).
		Where("department = ?", department)
	if year != "" {
		q = q.Where("year = ?", year)
	}
	if sem != "" {
		q = q.Where("sem = ?", sem)
	}
	if div != "" {
		q = q.Where("div = ?", div)
	}

	var requests []LeaveRequest
	err := q.Order("submitted_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindActedOnByActor(ctx context.Context, schoolID, actorID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Joins("JOIN leave_decisions ld ON ld.leave_request_id = leave_requests.id").
		Where("ld.actor_id = ?", actorID).
		Distinct().
		Order("submitted_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) UpdateStateGuarded(ctx context.Context, id, schoolID, seenStatus, seenLevel string, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Where("school_id = ?", schoolID).
		Where("status = ?", seenStatus).
		Where("current_level = ?", seenLevel).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *repository) CreateDecision(ctx context.Context, d *LeaveDecision) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindDecisionsByRequest(ctx context.Context, schoolID, requestID string) ([]LeaveDecision, error) {
	var decisions []LeaveDecision
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Where("leave_request_id = ?", requestID).
		Order("decided_at ASC").
		Find(&decisions).Error
	return decisions, err
}
