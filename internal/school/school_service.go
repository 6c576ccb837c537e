package school

import (
	"context"
	"errors"
	"strings"

	schoolerrors "campus-portal/internal/school/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/school_service_mock.go -package=mock . Service
type Service interface {
	GetByID(ctx context.Context, id string) (*SchoolResponse, error)
	GetByEmail(ctx context.Context, email string) (*SchoolResponse, error)
	Update(ctx context.Context, id string, req UpdateSchoolRequest) (*SchoolResponse, error)

	UpsertAccreditation(ctx context.Context, schoolID string, req UpsertAccreditationRequest) error
	ListAccreditations(ctx context.Context, schoolID string) ([]AccreditationResponse, error)
	DeleteAccreditation(ctx context.Context, schoolID string, accType AccreditationType) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, id string) (*SchoolResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, schoolerrors.ErrInvalidSchoolID
	}

	sch, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return s.mapToResponse(sch), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*SchoolResponse, error) {
	sch, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return s.mapToResponse(sch), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSchoolRequest) (*SchoolResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, schoolerrors.ErrInvalidSchoolID
	}

	sch, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if req.Name != "" {
		sch.Name = req.Name
	}
	if req.AcademicYear != "" {
		sch.AcademicYear = req.AcademicYear
	}
	if req.IsActive != nil {
		sch.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, sch); err != nil {
		return nil, mapRepositoryError(err)
	}

	return s.mapToResponse(sch), nil
}

func (s *service) UpsertAccreditation(ctx context.Context, schoolID string, req UpsertAccreditationRequest) error {
	id, err := uuid.Parse(schoolID)
	if err != nil {
		return schoolerrors.ErrInvalidSchoolID
	}

	if req.Type == "" {
		return schoolerrors.ErrInvalidAccreditationType
	}

	if strings.TrimSpace(req.Number) == "" {
		return schoolerrors.ErrMissingRequiredFields
	}

	acc := &Accreditation{
		SchoolID: id,
		Type:     req.Type,
		Number:   req.Number,
		IssuedAt: req.IssuedAt,
	}

	return s.repo.UpsertAccreditation(ctx, acc)
}

func (s *service) ListAccreditations(ctx context.Context, schoolID string) ([]AccreditationResponse, error) {
	id, err := uuid.Parse(schoolID)
	if err != nil {
		return nil, schoolerrors.ErrInvalidSchoolID
	}

	accs, err := s.repo.GetAccreditationsBySchoolID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	var result []AccreditationResponse
	for _, a := range accs {
		result = append(result, AccreditationResponse{
			ID:        a.ID.String(),
			Type:      a.Type,
			Number:    a.Number,
			IssuedAt:  a.IssuedAt,
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		})
	}

	return result, nil
}

func (s *service) DeleteAccreditation(
	ctx context.Context,
	schoolID string,
	accType AccreditationType,
) error {
	id, err := uuid.Parse(schoolID)
	if err != nil {
		return schoolerrors.ErrInvalidSchoolID
	}

	if accType == "" {
		return schoolerrors.ErrInvalidAccreditationType
	}

	if err := s.repo.DeleteAccreditation(ctx, id, accType); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return schoolerrors.ErrAccreditationNotFound
		}
		return err
	}
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return schoolerrors.ErrSchoolNotFound
	}
	return err
}

func (s *service) mapToResponse(sch *School) *SchoolResponse {
	return &SchoolResponse{
		ID:           sch.ID.String(),
		Name:         sch.Name,
		Email:        sch.Email,
		AcademicYear: sch.AcademicYear,
		IsActive:     sch.IsActive,
	}
}
