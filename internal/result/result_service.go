package result

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	resulterrors "campus-portal/internal/result/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// csvColumns is the expected header of an import file.
var csvColumns = []string{"student_id", "subject_id", "exam_name", "marks", "max_marks"}

//go:generate mockgen -source=result_service.go -destination=mock/result_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, schoolID string, req CreateResultRequest) (ResultResponse, error)
	GetAll(ctx context.Context, schoolID string) ([]ResultResponse, error)
	GetByStudent(ctx context.Context, schoolID, studentID string) ([]ResultResponse, error)
	GetByID(ctx context.Context, schoolID, id string) (ResultResponse, error)
	Update(ctx context.Context, schoolID, id string, req UpdateResultRequest) (ResultResponse, error)
	Delete(ctx context.Context, schoolID, id string) error
	ImportCSV(ctx context.Context, schoolID string, r io.Reader) (ImportSummary, error)
	ExportXLSX(ctx context.Context, schoolID string) (*bytes.Buffer, string, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("result.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("result.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, schoolID string, req CreateResultRequest) (ResultResponse, error) {
	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return ResultResponse{}, resulterrors.ErrInvalidSchoolID
	}
	if req.Marks > req.MaxMarks {
		return ResultResponse{}, resulterrors.ErrMarksOutOfRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ResultResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	res := &Result{
		ID:        uuid.New(),
		SchoolID:  schoolUUID,
		StudentID: uuid.MustParse(req.StudentID),
		SubjectID: uuid.MustParse(req.SubjectID),
		ExamName:  strings.TrimSpace(req.ExamName),
		Marks:     req.Marks,
		MaxMarks:  req.MaxMarks,
	}

	if err := qtx.Create(ctx, res); err != nil {
		s.logger.Error("create result persist failed", zap.Error(err))
		return ResultResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ResultResponse{}, err
	}

	return mapToResponse(*res), nil
}

func (s *service) GetAll(ctx context.Context, schoolID string) ([]ResultResponse, error) {
	rows, err := s.repo.FindAllBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByStudent(ctx context.Context, schoolID, studentID string) ([]ResultResponse, error) {
	rows, err := s.repo.FindByStudent(ctx, schoolID, studentID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, schoolID, id string) (ResultResponse, error) {
	res, err := s.repo.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		return ResultResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*res), nil
}

func (s *service) Update(ctx context.Context, schoolID, id string, req UpdateResultRequest) (ResultResponse, error) {
	if req.Marks > req.MaxMarks {
		return ResultResponse{}, resulterrors.ErrMarksOutOfRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ResultResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	res, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		return ResultResponse{}, mapRepositoryError(err)
	}

	res.Marks = req.Marks
	res.MaxMarks = req.MaxMarks

	if err := qtx.Update(ctx, res); err != nil {
		s.logger.Error("update result persist failed", zap.Error(err))
		return ResultResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ResultResponse{}, err
	}

	return mapToResponse(*res), nil
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
	return tx.Commit()
}

// ImportCSV is all-or-nothing: every row is validated before anything
// is written, and the bulk insert runs in one transaction.
func (s *service) ImportCSV(ctx context.Context, schoolID string, r io.Reader) (ImportSummary, error) {
	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return ImportSummary{}, resulterrors.ErrInvalidSchoolID
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportSummary{}, resulterrors.ErrImportEmpty
	}
	colIdx, err := resolveColumns(header)
	if err != nil {
		return ImportSummary{}, err
	}

	var (
		rows      []Result
		rowErrors []ImportRowError
	)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, ImportRowError{Row: line, Message: err.Error()})
			continue
		}

		res, rowErr := parseImportRow(schoolUUID, record, colIdx)
		if rowErr != "" {
			rowErrors = append(rowErrors, ImportRowError{Row: line, Message: rowErr})
			continue
		}
		rows = append(rows, res)
	}

	if len(rowErrors) > 0 {
		s.logger.Warn("result import rejected",
			zap.String("school_id", schoolID),
			zap.Int("invalid_rows", len(rowErrors)),
		)
		return ImportSummary{Errors: rowErrors}, resulterrors.ErrImportValidation
	}
	if len(rows) == 0 {
		return ImportSummary{}, resulterrors.ErrImportEmpty
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportSummary{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.BulkCreate(ctx, rows); err != nil {
		s.logger.Error("result import persist failed", zap.Error(err))
		return ImportSummary{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ImportSummary{}, err
	}

	s.logger.Info("result import success",
		zap.String("school_id", schoolID),
		zap.Int("imported", len(rows)),
	)

	return ImportSummary{Imported: len(rows)}, nil
}

func (s *service) ExportXLSX(ctx context.Context, schoolID string) (*bytes.Buffer, string, error) {
	rows, err := s.repo.FindAllBySchool(ctx, schoolID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Results"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", resulterrors.ErrExportFailed
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "C", 38)
	f.SetColWidth(sheetName, "D", "F", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"Student ID", "Subject ID", "Exam", "Marks", "Max Marks", "Percentage"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, res := range rows {
		row := i + 2
		values := []interface{}{
			res.StudentID.String(),
			res.SubjectID.String(),
			res.ExamName,
			res.Marks,
			res.MaxMarks,
			fmt.Sprintf("%.1f%%", res.Marks/res.MaxMarks*100),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", resulterrors.ErrExportFailed
	}

	filename := fmt.Sprintf("results_%s.xlsx", time.Now().UTC().Format("20060102"))
	return buf, filename, nil
}

func resolveColumns(header []string) (map[string]int, error) {
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range csvColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, resulterrors.ErrImportValidation
		}
	}
	return colIdx, nil
}

func parseImportRow(schoolID uuid.UUID, record []string, colIdx map[string]int) (Result, string) {
	field := func(name string) string {
		i := colIdx[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	studentID, err := uuid.Parse(field("student_id"))
	if err != nil {
		return Result{}, "invalid student_id"
	}
	subjectID, err := uuid.Parse(field("subject_id"))
	if err != nil {
		return Result{}, "invalid subject_id"
	}
	examName := field("exam_name")
	if examName == "" {
		return Result{}, "exam_name is required"
	}
	marks, err := strconv.ParseFloat(field("marks"), 64)
	if err != nil || marks < 0 {
		return Result{}, "invalid marks"
	}
	maxMarks, err := strconv.ParseFloat(field("max_marks"), 64)
	if err != nil || maxMarks <= 0 {
		return Result{}, "invalid max_marks"
	}
	if marks > maxMarks {
		return Result{}, "marks exceed max_marks"
	}

	return Result{
		ID:        uuid.New(),
		SchoolID:  schoolID,
		StudentID: studentID,
		SubjectID: subjectID,
		ExamName:  examName,
		Marks:     marks,
		MaxMarks:  maxMarks,
	}, ""
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return resulterrors.ErrResultNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return resulterrors.ErrResultAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return resulterrors.ErrResultAlreadyExists
	}
	return err
}

func mapToResponse(res Result) ResultResponse {
	return ResultResponse{
		ID:        res.ID.String(),
		SchoolID:  res.SchoolID.String(),
		StudentID: res.StudentID.String(),
		SubjectID: res.SubjectID.String(),
		ExamName:  res.ExamName,
		Marks:     res.Marks,
		MaxMarks:  res.MaxMarks,
	}
}

func mapToListResponse(rows []Result) []ResultResponse {
	resp := make([]ResultResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}
