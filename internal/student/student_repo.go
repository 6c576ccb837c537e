package student

import (
	"context"
	"database/sql"

	"campus-portal/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=student_repo.go -destination=mock/student_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, st *Student) error
	FindAllBySchool(ctx context.Context, schoolID string) ([]Student, error)
	FindOptionsBySchool(ctx context.Context, schoolID string) ([]Student, error)
	FindByIDAndSchool(ctx context.Context, schoolID string, id string) (*Student, error)
	FindByID(ctx context.Context, id string) (*Student, error)
	FindByScope(ctx context.Context, schoolID, department, year, sem, div string) ([]Student, error)
	Update(ctx context.Context, st *Student) error
	Delete(ctx context.Context, schoolID string, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, st *Student) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string) ([]Student, error) {
	var students []Student
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("roll_number ASC").
		Find(&students).Error
	return students, err
}

func (r *repository) FindOptionsBySchool(ctx context.Context, schoolID string) ([]Student, error) {
	var students []Student
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Select("id", "school_id", "roll_number", "full_name", "department", "year", "sem", "div").
		Order("full_name ASC").
		Find(&students).Error
	return students, err
}

func (r *repository) FindByIDAndSchool(ctx context.Context, schoolID string, id string) (*Student, error) {
	var st Student
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		First(&st, "id = ?", id).Error
	return &st, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Student, error) {
	var st Student
	err := r.db.WithContext(ctx).First(&st, "id = ?", id).Error
	return &st, err
}

func (r *repository) FindByScope(ctx context.Context, schoolID, department, year, sem, div string) ([]Student, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
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

	var students []Student
	err := q.Order("roll_number ASC").Find(&students).Error
	return students, err
}

func (r *repository) Update(ctx context.Context, st *Student) error {
	return r.db.WithContext(ctx).Save(st).Error
}

func (r *repository) Delete(ctx context.Context, schoolID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Delete(&Student{}, "id = ?", id).Error
}
