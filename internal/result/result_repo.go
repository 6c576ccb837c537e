package result

import (
	"context"
	"database/sql"

	"campus-portal/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=result_repo.go -destination=mock/result_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, res *Result) error
	BulkCreate(ctx context.Context, rows []Result) error
	FindAllBySchool(ctx context.Context, schoolID string) ([]Result, error)
	FindByStudent(ctx context.Context, schoolID, studentID string) ([]Result, error)
	FindByIDAndSchool(ctx context.Context, schoolID, id string) (*Result, error)
	Update(ctx context.Context, res *Result) error
	Delete(ctx context.Context, schoolID, id string) error
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

func (r *repository) Create(ctx context.Context, res *Result) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *repository) BulkCreate(ctx context.Context, rows []Result) error {
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string) ([]Result, error) {
	var rows []Result
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("exam_name ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByStudent(ctx context.Context, schoolID, studentID string) ([]Result, error) {
	var rows []Result
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("student_id = ?", studentID).
		Order("exam_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*Result, error) {
	var res Result
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		First(&res, "id = ?", id).Error
	return &res, err
}

func (r *repository) Update(ctx context.Context, res *Result) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *repository) Delete(ctx context.Context, schoolID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Delete(&Result{}, "id = ?", id).Error
}
