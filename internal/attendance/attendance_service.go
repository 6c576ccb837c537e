package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	attendanceerrors "campus-portal/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusOnLeave = "on_leave"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, schoolID, actorID string, req MarkAttendanceRequest) ([]AttendanceResponse, error)
	GetBySubjectAndDate(ctx context.Context, schoolID, subjectID, date string) ([]AttendanceResponse, error)
	GetForStudent(ctx context.Context, schoolID, studentID string) ([]AttendanceResponse, error)
	GetSummary(ctx context.Context, schoolID, studentID, subjectID string) (StudentSummaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Mark writes the whole sheet in one transaction. Any duplicate against
// an earlier marking rolls back the entire sheet.
func (s *service) Mark(ctx context.Context, schoolID, actorID string, req MarkAttendanceRequest) ([]AttendanceResponse, error) {
	s.logger.Debug("mark attendance requested",
		zap.String("school_id", schoolID),
		zap.String("subject_id", req.SubjectID),
		zap.String("date", req.Date),
		zap.Int("entries", len(req.Entries)),
	)

	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidSchoolID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidActorID
	}
	subjectUUID := uuid.MustParse(req.SubjectID)
	batchUUID := uuid.MustParse(req.BatchID)

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}

	seen := make(map[string]bool, len(req.Entries))
	rows := make([]Attendance, 0, len(req.Entries))
	for _, entry := range req.Entries {
		if seen[entry.StudentID] {
			return nil, attendanceerrors.ErrDuplicateStudentEntry
		}
		seen[entry.StudentID] = true

		rows = append(rows, Attendance{
			ID:             uuid.New(),
			SchoolID:       schoolUUID,
			SubjectID:      subjectUUID,
			BatchID:        batchUUID,
			StudentID:      uuid.MustParse(entry.StudentID),
			AttendanceDate: date,
			Status:         entry.Status,
			MarkedBy:       actorUUID,
			Notes:          entry.Notes,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark attendance begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.BulkCreate(ctx, rows); err != nil {
		s.logger.Warn("mark attendance persist failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("mark attendance commit failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("mark attendance success",
		zap.String("subject_id", req.SubjectID),
		zap.String("date", req.Date),
		zap.Int("marked", len(rows)),
	)

	return mapToListResponse(rows), nil
}

func (s *service) GetBySubjectAndDate(ctx context.Context, schoolID, subjectID, date string) ([]AttendanceResponse, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}

	rows, err := s.repo.FindBySubjectAndDate(ctx, schoolID, subjectID, d)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetForStudent(ctx context.Context, schoolID, studentID string) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindByStudent(ctx, schoolID, studentID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetSummary(ctx context.Context, schoolID, studentID, subjectID string) (StudentSummaryResponse, error) {
	counts, err := s.repo.CountByStatusForStudent(ctx, schoolID, studentID, subjectID)
	if err != nil {
		return StudentSummaryResponse{}, err
	}

	summary := StudentSummaryResponse{
		StudentID: studentID,
		SubjectID: subjectID,
		Present:   counts[StatusPresent],
		Absent:    counts[StatusAbsent],
		OnLeave:   counts[StatusOnLeave],
	}
	summary.Total = summary.Present + summary.Absent + summary.OnLeave
	if summary.Total > 0 {
		// On-leave days count toward attended for the percentage.
		summary.Percentage = float64(summary.Present+summary.OnLeave) / float64(summary.Total) * 100
	}
	return summary, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return attendanceerrors.ErrAlreadyMarked
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return attendanceerrors.ErrAlreadyMarked
	}
	return err
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:             a.ID.String(),
		SchoolID:       a.SchoolID.String(),
		SubjectID:      a.SubjectID.String(),
		BatchID:        a.BatchID.String(),
		StudentID:      a.StudentID.String(),
		AttendanceDate: a.AttendanceDate.Format(dateLayout),
		Status:         a.Status,
		MarkedBy:       a.MarkedBy.String(),
		Notes:          a.Notes,
	}
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
