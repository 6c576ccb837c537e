package student_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"campus-portal/internal/events"
	"campus-portal/internal/messaging/kafka"
	"campus-portal/internal/student"
	studenterrors "campus-portal/internal/student/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeStudentRepository struct {
	withTxFn              func(tx *sql.Tx) student.Repository
	createFn              func(ctx context.Context, st *student.Student) error
	findAllBySchoolFn     func(ctx context.Context, schoolID string) ([]student.Student, error)
	findOptionsBySchoolFn func(ctx context.Context, schoolID string) ([]student.Student, error)
	findByIDAndSchoolFn   func(ctx context.Context, schoolID, id string) (*student.Student, error)
	findByIDFn            func(ctx context.Context, id string) (*student.Student, error)
	findByScopeFn         func(ctx context.Context, schoolID, department, year, sem, div string) ([]student.Student, error)
	updateFn              func(ctx context.Context, st *student.Student) error
	deleteFn              func(ctx context.Context, schoolID, id string) error
}

func (f *fakeStudentRepository) WithTx(tx *sql.Tx) student.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeStudentRepository) Create(ctx context.Context, st *student.Student) error {
	if f.createFn != nil {
		return f.createFn(ctx, st)
	}
	return nil
}

func (f *fakeStudentRepository) FindAllBySchool(ctx context.Context, schoolID string) ([]student.Student, error) {
	if f.findAllBySchoolFn != nil {
		return f.findAllBySchoolFn(ctx, schoolID)
	}
	return nil, nil
}

func (f *fakeStudentRepository) FindOptionsBySchool(ctx context.Context, schoolID string) ([]student.Student, error) {
	if f.findOptionsBySchoolFn != nil {
		return f.findOptionsBySchoolFn(ctx, schoolID)
	}
	return nil, nil
}

func (f *fakeStudentRepository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*student.Student, error) {
	if f.findByIDAndSchoolFn != nil {
		return f.findByIDAndSchoolFn(ctx, schoolID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStudentRepository) FindByID(ctx context.Context, id string) (*student.Student, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStudentRepository) FindByScope(ctx context.Context, schoolID, department, year, sem, div string) ([]student.Student, error) {
	if f.findByScopeFn != nil {
		return f.findByScopeFn(ctx, schoolID, department, year, sem, div)
	}
	return nil, nil
}

func (f *fakeStudentRepository) Update(ctx context.Context, st *student.Student) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, st)
	}
	return nil
}

func (f *fakeStudentRepository) Delete(ctx context.Context, schoolID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, schoolID, id)
	}
	return nil
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, schoolID string, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutboxRepository struct {
	mu      sync.Mutex
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func (f *fakeOutboxRepository) PurgeSentBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type studentServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service student.Service
	repo    *fakeStudentRepository
	outbox  *fakeOutboxRepository
}

func setupStudentServiceTest(t *testing.T) *studentServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeStudentRepository{}
	outbox := &fakeOutboxRepository{}
	svc := student.NewServiceWithOutbox(db, repo, &fakeCounterRepository{}, outbox, nil)

	return &studentServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, outbox: outbox}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestStudentService_Create(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()

	t.Run("success generates roll number and stages event", func(t *testing.T) {
		deps := setupStudentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, st *student.Student) error {
			assert.Equal(t, uuid.MustParse(schoolID), st.SchoolID)
			assert.Equal(t, "STU-000001", st.RollNumber)
			assert.Equal(t, "Asha Verma", st.FullName)
			return nil
		}

		resp, err := deps.service.Create(ctx, schoolID, student.CreateStudentRequest{
			FullName:   "Asha Verma",
			Email:      "asha@school.edu",
			Department: "CS",
			Year:       "2",
			Sem:        "4",
			Div:        "A",
		})

		assert.NoError(t, err)
		assert.Equal(t, "STU-000001", resp.RollNumber)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())

		assert.Len(t, deps.outbox.created, 1)
		staged := deps.outbox.created[0]
		assert.Equal(t, "student_enrolled", staged.EventType)
		assert.Equal(t, events.StudentLifecycleTopic, staged.Topic)
		assert.Equal(t, kafka.OutboxStatusPending, staged.Status)

		var event events.StudentEnrolledEvent
		assert.NoError(t, json.Unmarshal(staged.Payload, &event))
		assert.Equal(t, resp.ID, event.StudentID)
		assert.Equal(t, "CS", event.Department)
	})

	t.Run("success keeps provided roll number", func(t *testing.T) {
		deps := setupStudentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, st *student.Student) error {
			assert.Equal(t, "CS-2024-117", st.RollNumber)
			return nil
		}

		resp, err := deps.service.Create(ctx, schoolID, student.CreateStudentRequest{
			FullName:   "Ravi Nair",
			Email:      "ravi@school.edu",
			RollNumber: "CS-2024-117",
			Department: "CS",
			Year:       "2",
			Sem:        "4",
			Div:        "B",
		})

		assert.NoError(t, err)
		assert.Equal(t, "CS-2024-117", resp.RollNumber)
	})

	t.Run("negative duplicate roll number", func(t *testing.T) {
		deps := setupStudentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, st *student.Student) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_student_roll"}
		}

		_, err := deps.service.Create(ctx, schoolID, student.CreateStudentRequest{
			FullName:   "Asha Verma",
			Email:      "asha@school.edu",
			RollNumber: "CS-2024-117",
			Department: "CS",
			Year:       "2",
			Sem:        "4",
			Div:        "A",
		})

		assert.ErrorIs(t, err, studenterrors.ErrRollNumberAlreadyExists)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("negative invalid school id", func(t *testing.T) {
		deps := setupStudentServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, "nope", student.CreateStudentRequest{
			FullName:   "Asha Verma",
			Email:      "asha@school.edu",
			Department: "CS",
			Year:       "2",
			Sem:        "4",
			Div:        "A",
		})

		assert.ErrorIs(t, err, studenterrors.ErrInvalidSchoolID)
	})
}

func TestStudentService_GetOptions(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()

	t.Run("success falls through to repo without redis", func(t *testing.T) {
		deps := setupStudentServiceTest(t)
		defer deps.db.Close()

		calls := 0
		deps.repo.findOptionsBySchoolFn = func(ctx context.Context, sid string) ([]student.Student, error) {
			calls++
			return []student.Student{
				{ID: uuid.New(), SchoolID: uuid.MustParse(schoolID), RollNumber: "STU-000001", FullName: "Asha Verma", Department: "CS"},
			}, nil
		}

		resp, err := deps.service.GetOptions(ctx, schoolID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, 1, calls)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupStudentServiceTest(t)
		defer deps.db.Close()

		deps.repo.findOptionsBySchoolFn = func(ctx context.Context, sid string) ([]student.Student, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.GetOptions(ctx, schoolID)

		assert.ErrorIs(t, err, studenterrors.ErrStudentNotFound)
	})
}

func TestStudentService_Update(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()
	id := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupStudentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndSchoolFn = func(ctx context.Context, sid, targetID string) (*student.Student, error) {
			return &student.Student{
				ID:         uuid.MustParse(targetID),
				SchoolID:   uuid.MustParse(sid),
				RollNumber: "STU-000001",
				FullName:   "Asha Verma",
				Email:      "asha@school.edu",
				Department: "CS",
				Year:       "2",
				Sem:        "4",
				Div:        "A",
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, st *student.Student) error {
			assert.Equal(t, "3", st.Year)
			assert.Equal(t, "5", st.Sem)
			return nil
		}

		resp, err := deps.service.Update(ctx, schoolID, id, student.UpdateStudentRequest{
			FullName:   "Asha Verma",
			Email:      "asha@school.edu",
			Department: "CS",
			Year:       "3",
			Sem:        "5",
			Div:        "A",
		})

		assert.NoError(t, err)
		assert.Equal(t, "3", resp.Year)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found rolls back", func(t *testing.T) {
		deps := setupStudentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndSchoolFn = func(ctx context.Context, sid, targetID string) (*student.Student, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Update(ctx, schoolID, id, student.UpdateStudentRequest{
			FullName:   "Asha Verma",
			Email:      "asha@school.edu",
			Department: "CS",
			Year:       "3",
			Sem:        "5",
			Div:        "A",
		})

		assert.ErrorIs(t, err, studenterrors.ErrStudentNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestStudentService_Delete(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()
	id := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupStudentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.deleteFn = func(ctx context.Context, sid, targetID string) error {
			assert.Equal(t, id, targetID)
			return nil
		}

		err := deps.service.Delete(ctx, schoolID, id)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
