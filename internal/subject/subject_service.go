package subject

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	subjecterrors "campus-portal/internal/subject/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const SubjectAllKeyPrefix = "subjects:all:"

func GetSubjectAllKey(schoolID string) string {
	return SubjectAllKeyPrefix + schoolID
}

//go:generate mockgen -source=subject_service.go -destination=mock/subject_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, schoolID string, req CreateSubjectRequest) (SubjectResponse, error)
	GetAll(ctx context.Context, schoolID string) ([]SubjectResponse, error)
	GetByBatch(ctx context.Context, schoolID, batchID string) ([]SubjectResponse, error)
	GetByID(ctx context.Context, schoolID, id string) (SubjectResponse, error)
	Update(ctx context.Context, schoolID, id string, req UpdateSubjectRequest) (SubjectResponse, error)
	Delete(ctx context.Context, schoolID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("subject.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("subject.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	schoolID string,
	req CreateSubjectRequest,
) (SubjectResponse, error) {
	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return SubjectResponse{}, subjecterrors.ErrInvalidSchoolID
	}
	batchUUID, err := uuid.Parse(req.BatchID)
	if err != nil {
		return SubjectResponse{}, subjecterrors.ErrInvalidBatchID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SubjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sub := &Subject{
		ID:        uuid.New(),
		SchoolID:  schoolUUID,
		BatchID:   batchUUID,
		Name:      req.Name,
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		Credits:   req.Credits,
		TeacherID: uuidPtr(req.TeacherID),
	}

	if err := qtx.Create(ctx, sub); err != nil {
		s.logger.Error("create subject persist failed", zap.Error(err))
		return SubjectResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SubjectResponse{}, err
	}

	s.invalidateCache(ctx, schoolID)

	return mapToResponse(*sub), nil
}

func (s *service) GetAll(
	ctx context.Context,
	schoolID string,
) ([]SubjectResponse, error) {
	cacheKey := GetSubjectAllKey(schoolID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []SubjectResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		subs, err := s.repo.FindAllBySchool(ctx, schoolID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(subs)

		// Subject catalog changes a few times a semester; 30 minutes is plenty.
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]SubjectResponse), nil
}

func (s *service) GetByBatch(
	ctx context.Context,
	schoolID, batchID string,
) ([]SubjectResponse, error) {
	subs, err := s.repo.FindByBatch(ctx, schoolID, batchID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(subs), nil
}

func (s *service) GetByID(
	ctx context.Context,
	schoolID, id string,
) (SubjectResponse, error) {
	sub, err := s.repo.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		return SubjectResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*sub), nil
}

func (s *service) Update(
	ctx context.Context,
	schoolID, id string,
	req UpdateSubjectRequest,
) (SubjectResponse, error) {
	batchUUID, err := uuid.Parse(req.BatchID)
	if err != nil {
		return SubjectResponse{}, subjecterrors.ErrInvalidBatchID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SubjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sub, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		return SubjectResponse{}, mapRepositoryError(err)
	}

	sub.Name = req.Name
	sub.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	sub.BatchID = batchUUID
	sub.Credits = req.Credits
	sub.TeacherID = uuidPtr(req.TeacherID)

	if err := qtx.Update(ctx, sub); err != nil {
		s.logger.Error("update subject persist failed", zap.Error(err))
		return SubjectResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SubjectResponse{}, err
	}

	s.invalidateCache(ctx, schoolID)

	return mapToResponse(*sub), nil
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

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateCache(ctx, schoolID)

	return nil
}

func (s *service) invalidateCache(ctx context.Context, schoolID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetSubjectAllKey(schoolID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate subject cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return subjecterrors.ErrSubjectNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return subjecterrors.ErrSubjectCodeAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return subjecterrors.ErrSubjectCodeAlreadyExists
	}
	return err
}

func mapToResponse(sub Subject) SubjectResponse {
	resp := SubjectResponse{
		ID:       sub.ID.String(),
		SchoolID: sub.SchoolID.String(),
		Name:     sub.Name,
		Code:     sub.Code,
		Credits:  sub.Credits,
	}
	if sub.BatchID != uuid.Nil {
		resp.BatchID = sub.BatchID.String()
	}
	if sub.Batch != nil {
		resp.BatchName = sub.Batch.Name
	}
	if sub.TeacherID != nil {
		resp.TeacherID = sub.TeacherID.String()
	}
	if !sub.CreatedAt.IsZero() {
		resp.CreatedAt = sub.CreatedAt.Format(time.RFC3339)
	}
	if !sub.UpdatedAt.IsZero() {
		resp.UpdatedAt = sub.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(subs []Subject) []SubjectResponse {
	res := make([]SubjectResponse, len(subs))
	for i, d := range subs {
		res[i] = mapToResponse(d)
	}
	return res
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}
