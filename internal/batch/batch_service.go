package batch

import (
	"context"
	"database/sql"
	"errors"
	"time"

	batcherrors "campus-portal/internal/batch/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=batch_service.go -destination=mock/batch_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, schoolID string, req CreateBatchRequest) (BatchResponse, error)
	GetAll(ctx context.Context, schoolID string) ([]BatchResponse, error)
	GetByID(ctx context.Context, schoolID, id string) (BatchResponse, error)
	Update(ctx context.Context, schoolID, id string, req UpdateBatchRequest) (BatchResponse, error)
	Delete(ctx context.Context, schoolID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("batch.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("batch.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	schoolID string,
	req CreateBatchRequest,
) (BatchResponse, error) {
	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return BatchResponse{}, batcherrors.ErrInvalidSchoolID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BatchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b := &Batch{
		ID:             uuid.New(),
		SchoolID:       schoolUUID,
		Name:           req.Name,
		Department:     req.Department,
		Year:           req.Year,
		Sem:            req.Sem,
		Div:            req.Div,
		ClassTeacherID: uuidPtr(req.ClassTeacherID),
	}

	if err := qtx.Create(ctx, b); err != nil {
		s.logger.Error("create batch persist failed", zap.Error(err))
		return BatchResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return BatchResponse{}, err
	}

	s.logger.Info("create batch success",
		zap.String("batch_id", b.ID.String()),
		zap.String("school_id", schoolID),
	)

	return mapToResponse(*b), nil
}

func (s *service) GetAll(
	ctx context.Context,
	schoolID string,
) ([]BatchResponse, error) {
	batches, err := s.repo.FindAllBySchool(ctx, schoolID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(batches), nil
}

func (s *service) GetByID(
	ctx context.Context,
	schoolID, id string,
) (BatchResponse, error) {
	b, err := s.repo.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		return BatchResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*b), nil
}

func (s *service) Update(
	ctx context.Context,
	schoolID, id string,
	req UpdateBatchRequest,
) (BatchResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BatchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		return BatchResponse{}, mapRepositoryError(err)
	}

	b.Name = req.Name
	b.Department = req.Department
	b.Year = req.Year
	b.Sem = req.Sem
	b.Div = req.Div
	b.ClassTeacherID = uuidPtr(req.ClassTeacherID)

	if err := qtx.Update(ctx, b); err != nil {
		s.logger.Error("update batch persist failed", zap.Error(err))
		return BatchResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return BatchResponse{}, err
	}

	return mapToResponse(*b), nil
}

func (s *service) Delete(
	ctx context.Context,
	schoolID, id string,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, schoolID, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return batcherrors.ErrBatchNotFound
	}
	return err
}

func mapToResponse(b Batch) BatchResponse {
	resp := BatchResponse{
		ID:         b.ID.String(),
		SchoolID:   b.SchoolID.String(),
		Name:       b.Name,
		Department: b.Department,
		Year:       b.Year,
		Sem:        b.Sem,
		Div:        b.Div,
	}
	if b.ClassTeacherID != nil {
		resp.ClassTeacherID = b.ClassTeacherID.String()
	}
	if !b.CreatedAt.IsZero() {
		resp.CreatedAt = b.CreatedAt.Format(time.RFC3339)
	}
	if !b.UpdatedAt.IsZero() {
		resp.UpdatedAt = b.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func mapToListResponse(batches []Batch) []BatchResponse {
	res := make([]BatchResponse, len(batches))
	for i, b := range batches {
		res[i] = mapToResponse(b)
	}
	return res
}
