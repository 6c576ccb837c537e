package attendance

import (
	"context"
	"database/sql"
	"time"

	"campus-portal/internal/tenant"

	"gorm.io/gorm"
)

type statusCount struct {
	Status string
	Count  int
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	BulkCreate(ctx context.Context, rows []Attendance) error
	FindBySubjectAndDate(ctx context.Context, schoolID, subjectID string, date time.Time) ([]Attendance, error)
	FindByStudent(ctx context.Context, schoolID, studentID string) ([]Attendance, error)
	CountByStatusForStudent(ctx context.Context, schoolID, studentID, subjectID string) (map[string]int, error)
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

func (r *repository) BulkCreate(ctx context.Context, rows []Attendance) error {
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) FindBySubjectAndDate(ctx context.Context, schoolID, subjectID string, date time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("subject_id = ?", subjectID).
		Where("attendance_date = ?", date).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByStudent(ctx context.Context, schoolID, studentID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("student_id = ?", studentID).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountByStatusForStudent(ctx context.Context, schoolID, studentID, subjectID string) (map[string]int, error) {
	q := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Scopes(tenant.Scope(schoolID)).
		Where("student_id = ?", studentID)
	if subjectID != "" {
		q = q.Where("subject_id = ?", subjectID)
	}

	var counts []statusCount
	err := q.Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(counts))
	for _, c := range counts {
		out[c.Status] = c.Count
	}
	return out, nil
}
