package student

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"campus-portal/internal/events"
	"campus-portal/internal/messaging/kafka"
	"campus-portal/internal/shared/contextutil"
	"campus-portal/internal/shared/counter"
	studenterrors "campus-portal/internal/student/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const StudentOptionsKeyPrefix = "students:options:"

func GetStudentOptionsKey(schoolID string) string {
	return StudentOptionsKeyPrefix + schoolID
}

//go:generate mockgen -source=student_service.go -destination=mock/student_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, schoolID string, req CreateStudentRequest) (StudentResponse, error)
	GetAll(ctx context.Context, schoolID string) ([]StudentResponse, error)
	GetOptions(ctx context.Context, schoolID string) ([]StudentResponse, error)
	GetByID(ctx context.Context, schoolID, id string) (StudentResponse, error)
	Update(ctx context.Context, schoolID, id string, req UpdateStudentRequest) (StudentResponse, error)
	Delete(ctx context.Context, schoolID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("student.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("student.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l}
}

func (s *service) Create(
	ctx context.Context,
	schoolID string,
	req CreateStudentRequest,
) (StudentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create student requested",
		zap.String("request_id", rid),
		zap.String("school_id", schoolID),
		zap.String("email", req.Email),
		zap.String("department", req.Department),
	)

	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return StudentResponse{}, studenterrors.ErrInvalidSchoolID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create student begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return StudentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.RollNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, schoolID, "roll_number")
		if err != nil {
			s.logger.Error("create student generate roll number failed", zap.Error(err))
			return StudentResponse{}, err
		}
		req.RollNumber = fmt.Sprintf("STU-%06d", nextVal)
	}

	st := &Student{
		ID:         uuid.New(),
		SchoolID:   schoolUUID,
		RollNumber: req.RollNumber,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
		Year:       req.Year,
		Sem:        req.Sem,
		Div:        req.Div,
		BatchID:    uuidPtr(req.BatchID),
	}

	if err := qtx.Create(ctx, st); err != nil {
		s.logger.Error("create student persist failed", zap.Error(err))
		return StudentResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.StudentEnrolledEvent{
			EventType:  "student_enrolled",
			RequestID:  rid,
			StudentID:  st.ID.String(),
			SchoolID:   schoolID,
			Department: st.Department,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return StudentResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "student",
			AggregateID:   st.ID.String(),
			EventType:     event.EventType,
			Topic:         events.StudentLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create student outbox persist failed",
				zap.String("student_id", st.ID.String()),
				zap.Error(err),
			)
			return StudentResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return StudentResponse{}, err
	}

	s.invalidateOptionsCache(ctx, schoolID)

	s.logger.Info("create student success",
		zap.String("request_id", rid),
		zap.String("student_id", st.ID.String()),
	)

	return mapToResponse(*st), nil
}

func (s *service) GetAll(
	ctx context.Context,
	schoolID string,
) ([]StudentResponse, error) {
	s.logger.Debug("get all students requested", zap.String("school_id", schoolID))
	students, err := s.repo.FindAllBySchool(ctx, schoolID)
	if err != nil {
		s.logger.Error("get all students failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(students), nil
}

func (s *service) GetOptions(ctx context.Context, schoolID string) ([]StudentResponse, error) {
	cacheKey := GetStudentOptionsKey(schoolID)

	// 1. Redis first
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []StudentResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight collapses the stampede when every teacher opens
	// the marking form at the same time.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		students, err := s.repo.FindOptionsBySchool(ctx, schoolID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(students)

		// 3. Roster is master data; 1 hour TTL is fine.
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]StudentResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	schoolID, id string,
) (StudentResponse, error) {
	s.logger.Debug("get student by id requested",
		zap.String("school_id", schoolID),
		zap.String("student_id", id),
	)
	st, err := s.repo.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		s.logger.Error("get student by id failed", zap.Error(err))
		return StudentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*st), nil
}

func (s *service) Update(
	ctx context.Context,
	schoolID, id string,
	req UpdateStudentRequest,
) (StudentResponse, error) {
	s.logger.Debug("update student requested",
		zap.String("school_id", schoolID),
		zap.String("student_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update student begin tx failed", zap.Error(err))
		return StudentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	st, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		s.logger.Error("update student fetch existing failed", zap.Error(err))
		return StudentResponse{}, mapRepositoryError(err)
	}

	st.FullName = req.FullName
	st.Email = req.Email
	st.Department = req.Department
	st.Year = req.Year
	st.Sem = req.Sem
	st.Div = req.Div
	st.BatchID = uuidPtr(req.BatchID)

	if err := qtx.Update(ctx, st); err != nil {
		s.logger.Error("update student persist failed", zap.Error(err))
		return StudentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update student commit failed", zap.Error(err))
		return StudentResponse{}, err
	}

	s.invalidateOptionsCache(ctx, schoolID)

	return mapToResponse(*st), nil
}

func (s *service) Delete(ctx context.Context, schoolID, id string) error {
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

	s.invalidateOptionsCache(ctx, schoolID)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, schoolID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetStudentOptionsKey(schoolID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate student options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(st Student) StudentResponse {
	resp := StudentResponse{
		ID:         st.ID.String(),
		SchoolID:   st.SchoolID.String(),
		RollNumber: st.RollNumber,
		FullName:   st.FullName,
		Email:      st.Email,
		Department: st.Department,
		Year:       st.Year,
		Sem:        st.Sem,
		Div:        st.Div,
	}
	if st.BatchID != nil {
		resp.BatchID = st.BatchID.String()
	}
	return resp
}

func mapToListResponse(students []Student) []StudentResponse {
	res := make([]StudentResponse, len(students))
	for i, st := range students {
		res[i] = mapToResponse(st)
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
