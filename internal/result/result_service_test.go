package result_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"campus-portal/internal/result"
	resulterrors "campus-portal/internal/result/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeResultRepository struct {
	withTxFn            func(tx *sql.Tx) result.Repository
	createFn            func(ctx context.Context, res *result.Result) error
	bulkCreateFn        func(ctx context.Context, rows []result.Result) error
	findAllBySchoolFn   func(ctx context.Context, schoolID string) ([]result.Result, error)
	findByStudentFn     func(ctx context.Context, schoolID, studentID string) ([]result.Result, error)
	findByIDAndSchoolFn func(ctx context.Context, schoolID, id string) (*result.Result, error)
	updateFn            func(ctx context.Context, res *result.Result) error
	deleteFn            func(ctx context.Context, schoolID, id string) error
}

func (f *fakeResultRepository) WithTx(tx *sql.Tx) result.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeResultRepository) Create(ctx context.Context, res *result.Result) error {
	if f.createFn != nil {
		return f.createFn(ctx, res)
	}
	return nil
}

func (f *fakeResultRepository) BulkCreate(ctx context.Context, rows []result.Result) error {
	if f.bulkCreateFn != nil {
		return f.bulkCreateFn(ctx, rows)
	}
	return nil
}

func (f *fakeResultRepository) FindAllBySchool(ctx context.Context, schoolID string) ([]result.Result, error) {
	if f.findAllBySchoolFn != nil {
		return f.findAllBySchoolFn(ctx, schoolID)
	}
	return nil, nil
}

func (f *fakeResultRepository) FindByStudent(ctx context.Context, schoolID, studentID string) ([]result.Result, error) {
	if f.findByStudentFn != nil {
		return f.findByStudentFn(ctx, schoolID, studentID)
	}
	return nil, nil
}

func (f *fakeResultRepository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*result.Result, error) {
	if f.findByIDAndSchoolFn != nil {
		return f.findByIDAndSchoolFn(ctx, schoolID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResultRepository) Update(ctx context.Context, res *result.Result) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, res)
	}
	return nil
}

func (f *fakeResultRepository) Delete(ctx context.Context, schoolID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, schoolID, id)
	}
	return nil
}

type resultServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service result.Service
	repo    *fakeResultRepository
}

func setupResultServiceTest(t *testing.T) *resultServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeResultRepository{}
	svc := result.NewService(db, repo)

	return &resultServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
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

func TestResultService_Create(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupResultServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, res *result.Result) error {
			assert.Equal(t, uuid.MustParse(schoolID), res.SchoolID)
			assert.Equal(t, "Midterm", res.ExamName)
			assert.Equal(t, 72.5, res.Marks)
			return nil
		}

		resp, err := deps.service.Create(ctx, schoolID, result.CreateResultRequest{
			StudentID: uuid.New().String(),
			SubjectID: uuid.New().String(),
			ExamName:  "Midterm",
			Marks:     72.5,
			MaxMarks:  100,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Midterm", resp.ExamName)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative marks above max", func(t *testing.T) {
		deps := setupResultServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, schoolID, result.CreateResultRequest{
			StudentID: uuid.New().String(),
			SubjectID: uuid.New().String(),
			ExamName:  "Midterm",
			Marks:     105,
			MaxMarks:  100,
		})

		assert.ErrorIs(t, err, resulterrors.ErrMarksOutOfRange)
	})

	t.Run("negative duplicate exam entry", func(t *testing.T) {
		deps := setupResultServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, res *result.Result) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_result_exam"}
		}

		_, err := deps.service.Create(ctx, schoolID, result.CreateResultRequest{
			StudentID: uuid.New().String(),
			SubjectID: uuid.New().String(),
			ExamName:  "Midterm",
			Marks:     50,
			MaxMarks:  100,
		})

		assert.ErrorIs(t, err, resulterrors.ErrResultAlreadyExists)
	})
}

func TestResultService_ImportCSV(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()

	header := "student_id,subject_id,exam_name,marks,max_marks\n"

	t.Run("success all rows imported in one transaction", func(t *testing.T) {
		deps := setupResultServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		csv := header +
			uuid.New().String() + "," + uuid.New().String() + ",Midterm,72,100\n" +
			uuid.New().String() + "," + uuid.New().String() + ",Midterm,88.5,100\n"

		deps.repo.bulkCreateFn = func(ctx context.Context, rows []result.Result) error {
			assert.Len(t, rows, 2)
			assert.Equal(t, uuid.MustParse(schoolID), rows[0].SchoolID)
			assert.Equal(t, 88.5, rows[1].Marks)
			return nil
		}

		summary, err := deps.service.ImportCSV(ctx, schoolID, strings.NewReader(csv))

		assert.NoError(t, err)
		assert.Equal(t, 2, summary.Imported)
		assert.Empty(t, summary.Errors)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative any invalid row rejects whole file", func(t *testing.T) {
		deps := setupResultServiceTest(t)
		defer deps.db.Close()

		csv := header +
			uuid.New().String() + "," + uuid.New().String() + ",Midterm,72,100\n" +
			"not-a-uuid," + uuid.New().String() + ",Midterm,80,100\n" +
			uuid.New().String() + "," + uuid.New().String() + ",Midterm,120,100\n"

		deps.repo.bulkCreateFn = func(ctx context.Context, rows []result.Result) error {
			t.Fatal("bulk create must not run for an invalid file")
			return nil
		}

		summary, err := deps.service.ImportCSV(ctx, schoolID, strings.NewReader(csv))

		assert.ErrorIs(t, err, resulterrors.ErrImportValidation)
		assert.Len(t, summary.Errors, 2)
		assert.Equal(t, 3, summary.Errors[0].Row)
		assert.Equal(t, 4, summary.Errors[1].Row)
	})

	t.Run("negative header only", func(t *testing.T) {
		deps := setupResultServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.ImportCSV(ctx, schoolID, strings.NewReader(header))

		assert.ErrorIs(t, err, resulterrors.ErrImportEmpty)
	})

	t.Run("negative missing column", func(t *testing.T) {
		deps := setupResultServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.ImportCSV(ctx, schoolID, strings.NewReader("student_id,subject_id,marks\n"))

		assert.ErrorIs(t, err, resulterrors.ErrImportValidation)
	})

	t.Run("negative empty file", func(t *testing.T) {
		deps := setupResultServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.ImportCSV(ctx, schoolID, strings.NewReader(""))

		assert.ErrorIs(t, err, resulterrors.ErrImportEmpty)
	})
}

func TestResultService_ExportXLSX(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()

	t.Run("success writes workbook", func(t *testing.T) {
		deps := setupResultServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllBySchoolFn = func(ctx context.Context, sid string) ([]result.Result, error) {
			return []result.Result{
				{
					ID:        uuid.New(),
					SchoolID:  uuid.MustParse(schoolID),
					StudentID: uuid.New(),
					SubjectID: uuid.New(),
					ExamName:  "Final",
					Marks:     81,
					MaxMarks:  100,
				},
			}, nil
		}

		buf, filename, err := deps.service.ExportXLSX(ctx, schoolID)

		assert.NoError(t, err)
		assert.NotNil(t, buf)
		assert.Greater(t, buf.Len(), 0)
		assert.True(t, strings.HasPrefix(filename, "results_"))
		assert.True(t, strings.HasSuffix(filename, ".xlsx"))
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupResultServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllBySchoolFn = func(ctx context.Context, sid string) ([]result.Result, error) {
			return nil, errors.New("db error")
		}

		_, _, err := deps.service.ExportXLSX(ctx, schoolID)

		assert.Error(t, err)
	})
}

func TestResultService_Update(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()
	id := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupResultServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndSchoolFn = func(ctx context.Context, sid, targetID string) (*result.Result, error) {
			return &result.Result{
				ID:        uuid.MustParse(targetID),
				SchoolID:  uuid.MustParse(sid),
				StudentID: uuid.New(),
				SubjectID: uuid.New(),
				ExamName:  "Midterm",
				Marks:     40,
				MaxMarks:  100,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, res *result.Result) error {
			assert.Equal(t, 65.0, res.Marks)
			return nil
		}

		resp, err := deps.service.Update(ctx, schoolID, id, result.UpdateResultRequest{Marks: 65, MaxMarks: 100})

		assert.NoError(t, err)
		assert.Equal(t, 65.0, resp.Marks)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupResultServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndSchoolFn = func(ctx context.Context, sid, targetID string) (*result.Result, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Update(ctx, schoolID, id, result.UpdateResultRequest{Marks: 65, MaxMarks: 100})

		assert.ErrorIs(t, err, resulterrors.ErrResultNotFound)
	})
}
