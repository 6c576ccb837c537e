package subject_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"campus-portal/internal/subject"
	subjecterrors "campus-portal/internal/subject/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSubjectRepository struct {
	withTxFn            func(tx *sql.Tx) subject.Repository
	createFn            func(ctx context.Context, sub *subject.Subject) error
	findAllBySchoolFn   func(ctx context.Context, schoolID string) ([]subject.Subject, error)
	findByIDAndSchoolFn func(ctx context.Context, schoolID, id string) (*subject.Subject, error)
	findByBatchFn       func(ctx context.Context, schoolID, batchID string) ([]subject.Subject, error)
	updateFn            func(ctx context.Context, sub *subject.Subject) error
	deleteFn            func(ctx context.Context, schoolID, id string) error
}

func (f *fakeSubjectRepository) WithTx(tx *sql.Tx) subject.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeSubjectRepository) Create(ctx context.Context, sub *subject.Subject) error {
	if f.createFn != nil {
		return f.createFn(ctx, sub)
	}
	return nil
}

func (f *fakeSubjectRepository) FindAllBySchool(ctx context.Context, schoolID string) ([]subject.Subject, error) {
	if f.findAllBySchoolFn != nil {
		return f.findAllBySchoolFn(ctx, schoolID)
	}
	return nil, nil
}

func (f *fakeSubjectRepository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*subject.Subject, error) {
	if f.findByIDAndSchoolFn != nil {
		return f.findByIDAndSchoolFn(ctx, schoolID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubjectRepository) FindByBatch(ctx context.Context, schoolID, batchID string) ([]subject.Subject, error) {
	if f.findByBatchFn != nil {
		return f.findByBatchFn(ctx, schoolID, batchID)
	}
	return nil, nil
}

func (f *fakeSubjectRepository) Update(ctx context.Context, sub *subject.Subject) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, sub)
	}
	return nil
}

func (f *fakeSubjectRepository) Delete(ctx context.Context, schoolID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, schoolID, id)
	}
	return nil
}

type subjectServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service subject.Service
	repo    *fakeSubjectRepository
}

func setupSubjectServiceTest(t *testing.T) *subjectServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeSubjectRepository{}
	svc := subject.NewService(db, repo, nil)

	return &subjectServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
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

func TestSubjectService_Create(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()
	batchID := uuid.New().String()

	t.Run("success normalizes code", func(t *testing.T) {
		deps := setupSubjectServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, sub *subject.Subject) error {
			assert.Equal(t, uuid.MustParse(schoolID), sub.SchoolID)
			assert.Equal(t, uuid.MustParse(batchID), sub.BatchID)
			assert.Equal(t, "CS301", sub.Code)
			return nil
		}

		resp, err := deps.service.Create(ctx, schoolID, subject.CreateSubjectRequest{
			Name:    "Operating Systems",
			Code:    " cs301 ",
			BatchID: batchID,
			Credits: 4,
		})

		assert.NoError(t, err)
		assert.Equal(t, "CS301", resp.Code)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative duplicate code", func(t *testing.T) {
		deps := setupSubjectServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, sub *subject.Subject) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_subject_code"}
		}

		_, err := deps.service.Create(ctx, schoolID, subject.CreateSubjectRequest{
			Name:    "Operating Systems",
			Code:    "CS301",
			BatchID: batchID,
		})

		assert.ErrorIs(t, err, subjecterrors.ErrSubjectCodeAlreadyExists)
	})

	t.Run("negative invalid batch id", func(t *testing.T) {
		deps := setupSubjectServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, schoolID, subject.CreateSubjectRequest{
			Name:    "Operating Systems",
			Code:    "CS301",
			BatchID: "not-a-uuid",
		})

		assert.ErrorIs(t, err, subjecterrors.ErrInvalidBatchID)
	})
}

func TestSubjectService_GetAll(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupSubjectServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllBySchoolFn = func(ctx context.Context, sid string) ([]subject.Subject, error) {
			assert.Equal(t, schoolID, sid)
			return []subject.Subject{
				{ID: uuid.New(), SchoolID: uuid.MustParse(schoolID), BatchID: uuid.New(), Name: "OS", Code: "CS301", Credits: 4},
			}, nil
		}

		resp, err := deps.service.GetAll(ctx, schoolID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "CS301", resp[0].Code)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupSubjectServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllBySchoolFn = func(ctx context.Context, sid string) ([]subject.Subject, error) {
			return nil, errors.New("db error")
		}

		resp, err := deps.service.GetAll(ctx, schoolID)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestSubjectService_Update(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()
	id := uuid.New().String()
	batchID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupSubjectServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndSchoolFn = func(ctx context.Context, sid, targetID string) (*subject.Subject, error) {
			return &subject.Subject{
				ID:       uuid.MustParse(targetID),
				SchoolID: uuid.MustParse(sid),
				BatchID:  uuid.New(),
				Name:     "OS",
				Code:     "CS301",
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, sub *subject.Subject) error {
			assert.Equal(t, "Advanced OS", sub.Name)
			assert.Equal(t, uuid.MustParse(batchID), sub.BatchID)
			return nil
		}

		resp, err := deps.service.Update(ctx, schoolID, id, subject.UpdateSubjectRequest{
			Name:    "Advanced OS",
			Code:    "CS401",
			BatchID: batchID,
			Credits: 4,
		})

		assert.NoError(t, err)
		assert.Equal(t, "CS401", resp.Code)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupSubjectServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndSchoolFn = func(ctx context.Context, sid, targetID string) (*subject.Subject, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Update(ctx, schoolID, id, subject.UpdateSubjectRequest{
			Name:    "Advanced OS",
			Code:    "CS401",
			BatchID: batchID,
		})

		assert.ErrorIs(t, err, subjecterrors.ErrSubjectNotFound)
	})
}

func TestSubjectService_GetByBatch(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()
	batchID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupSubjectServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByBatchFn = func(ctx context.Context, sid, bid string) ([]subject.Subject, error) {
			assert.Equal(t, batchID, bid)
			return []subject.Subject{
				{ID: uuid.New(), SchoolID: uuid.MustParse(schoolID), BatchID: uuid.MustParse(batchID), Name: "OS", Code: "CS301"},
			}, nil
		}

		resp, err := deps.service.GetByBatch(ctx, schoolID, batchID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, batchID, resp[0].BatchID)
	})
}
