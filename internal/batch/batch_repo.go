package batch

import (
	"context"
	"database/sql"

	"campus-portal/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=batch_repo.go -destination=mock/batch_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *Batch) error
	FindAllBySchool(ctx context.Context, schoolID string) ([]Batch, error)
	FindByIDAndSchool(ctx context.Context, schoolID string, id string) (*Batch, error)
	Update(ctx context.Context, b *Batch) error
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

func (r *repository) Create(ctx context.Context, b *Batch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string) ([]Batch, error) {
	var batches []Batch
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("department ASC, year ASC, div ASC").
		Find(&batches).Error
	return batches, err
}

func (r *repository) FindByIDAndSchool(ctx context.Context, schoolID string, id string) (*Batch, error) {
	var b Batch
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		First(&b, "id = ?", id).Error
	return &b, err
}

func (r *repository) Update(ctx context.Context, b *Batch) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) Delete(ctx context.Context, schoolID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Delete(&Batch{}, "id = ?", id).Error
}
