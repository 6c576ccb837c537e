package subject

import (
	"context"
	"database/sql"

	"campus-portal/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=subject_repo.go -destination=mock/subject_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, sub *Subject) error
	FindAllBySchool(ctx context.Context, schoolID string) ([]Subject, error)
	FindByIDAndSchool(ctx context.Context, schoolID string, id string) (*Subject, error)
	FindByBatch(ctx context.Context, schoolID, batchID string) ([]Subject, error)
	Update(ctx context.Context, sub *Subject) error
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

func (r *repository) Create(ctx context.Context, sub *Subject) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string) ([]Subject, error) {
	var subs []Subject
	err := r.db.WithContext(ctx).
		Preload("Batch").
		Scopes(tenant.Scope(schoolID)).
		Order("code ASC").
		Find(&subs).Error
	return subs, err
}

func (r *repository) FindByIDAndSchool(ctx context.Context, schoolID string, id string) (*Subject, error) {
	var sub Subject
	err := r.db.WithContext(ctx).
		Preload("Batch").
		Scopes(tenant.Scope(schoolID)).
		First(&sub, "id = ?", id).Error
	return &sub, err
}

func (r *repository) FindByBatch(ctx context.Context, schoolID, batchID string) ([]Subject, error) {
	var subs []Subject
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("batch_id = ?", batchID).
		Order("code ASC").
		Find(&subs).Error
	return subs, err
}

func (r *repository) Update(ctx context.Context, sub *Subject) error {
	// Avoid persisting the preloaded Batch association on update.
	return r.db.WithContext(ctx).Omit("Batch").Save(sub).Error
}

func (r *repository) Delete(ctx context.Context, schoolID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Delete(&Subject{}, "id = ?", id).Error
}
