package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByStudentID(ctx context.Context, studentID uuid.UUID) (*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return &user, err
	}
	if err := r.resolveEffectiveRole(ctx, &user); err != nil {
		return &user, err
	}
	return &user, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return &user, err
	}
	if err := r.resolveEffectiveRole(ctx, &user); err != nil {
		return &user, err
	}
	return &user, err
}

// GetByStudentID finds the portal account linked to a roster student.
// Notification delivery keys on the account id, not the roster id.
func (r *repository) GetByStudentID(ctx context.Context, studentID uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&user).Error
	if err != nil {
		return &user, err
	}
	if err := r.resolveEffectiveRole(ctx, &user); err != nil {
		return &user, err
	}
	return &user, err
}

// resolveEffectiveRole picks the highest-ranked role assigned through the
// rbac tables, falling back to the column value on the user row.
func (r *repository) resolveEffectiveRole(ctx context.Context, user *User) error {
	var roleName string
	err := r.db.WithContext(ctx).
		Table("user_roles ur").
		Select("roles.name").
		Joins("JOIN roles ON roles.id = ur.role_id").
		Where("ur.user_id = ?", user.ID).
		Where("roles.school_id = ?", user.SchoolID).
		Order(`
			CASE roles.name
				WHEN 'Admin' THEN 1
				WHEN 'Principal' THEN 2
				WHEN 'HOD' THEN 3
				WHEN 'Teacher' THEN 4
				WHEN 'Student' THEN 5
				ELSE 99
			END ASC`).
		Limit(1).
		Scan(&roleName).Error
	if err != nil {
		return err
	}

	if strings.TrimSpace(roleName) == "" {
		roleName = user.Role
	}
	if strings.TrimSpace(roleName) == "" {
		roleName = "Student"
	}
	user.Role = strings.TrimSpace(roleName)
	return nil
}
