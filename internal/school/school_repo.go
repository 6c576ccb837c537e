package school

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -destination=mock/school_repo_mock.go -package=mock . Repository
type Repository interface {
	Create(ctx context.Context, sch *School) error
	GetByID(ctx context.Context, id uuid.UUID) (*School, error)
	GetByEmail(ctx context.Context, email string) (*School, error)
	Update(ctx context.Context, sch *School) error
	UpsertAccreditation(ctx context.Context, acc *Accreditation) error
	GetAccreditationsBySchoolID(ctx context.Context, schoolID uuid.UUID) ([]Accreditation, error)
	DeleteAccreditation(ctx context.Context, schoolID uuid.UUID, accType AccreditationType) error
	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, sch *School) error {
	return r.db.WithContext(ctx).Create(sch).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*School, error) {
	var sch School
	err := r.db.WithContext(ctx).First(&sch, "id = ?", id).Error
	return &sch, err
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*School, error) {
	var sch School
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&sch).Error
	return &sch, err
}

func (r *repository) Update(ctx context.Context, sch *School) error {
	return r.db.WithContext(ctx).Save(sch).Error
}

func (r *repository) UpsertAccreditation(ctx context.Context, acc *Accreditation) error {
	// One record per (school, type); latest upsert wins.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "school_id"}, {Name: "type"}},
			DoUpdates: clause.AssignmentColumns([]string{"number", "issued_at", "updated_at"}),
		}).
		Create(acc).Error
}

func (r *repository) GetAccreditationsBySchoolID(ctx context.Context, schoolID uuid.UUID) ([]Accreditation, error) {
	var accs []Accreditation
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("type ASC").
		Find(&accs).Error
	return accs, err
}

func (r *repository) DeleteAccreditation(ctx context.Context, schoolID uuid.UUID, accType AccreditationType) error {
	res := r.db.WithContext(ctx).
		Where("school_id = ? AND type = ?", schoolID, accType).
		Delete(&Accreditation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
