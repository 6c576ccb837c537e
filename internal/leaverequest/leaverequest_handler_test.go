package leaverequest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campus-portal/internal/leaverequest"
	leaverequesterrors "campus-portal/internal/leaverequest/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	submitFn          func(ctx context.Context, schoolID, actorID string, req leaverequest.SubmitLeaveRequest) (leaverequest.LeaveRequestResponse, error)
	applyDecisionFn   func(ctx context.Context, schoolID, actorID, id string, req leaverequest.DecisionRequest) (leaverequest.LeaveRequestResponse, error)
	resubmitFn        func(ctx context.Context, schoolID, actorID, id string, req leaverequest.ResubmitRequest) (leaverequest.LeaveRequestResponse, error)
	listForApproverFn func(ctx context.Context, schoolID, actorID string) ([]leaverequest.LeaveRequestResponse, error)
	listForStudentFn  func(ctx context.Context, schoolID, studentID string) ([]leaverequest.LeaveRequestResponse, error)
	listMineFn        func(ctx context.Context, schoolID, actorID string) ([]leaverequest.LeaveRequestResponse, error)
	getAllFn          func(ctx context.Context, schoolID string) ([]leaverequest.LeaveRequestResponse, error)
	getByIDFn         func(ctx context.Context, schoolID, id string) (leaverequest.LeaveRequestResponse, error)
	listDecisionsFn   func(ctx context.Context, schoolID, id string) ([]leaverequest.LeaveDecisionResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, schoolID, actorID string, req leaverequest.SubmitLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.submitFn(ctx, schoolID, actorID, req)
}
func (f *fakeLeaveService) ApplyDecision(ctx context.Context, schoolID, actorID, id string, req leaverequest.DecisionRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.applyDecisionFn(ctx, schoolID, actorID, id, req)
}
func (f *fakeLeaveService) Resubmit(ctx context.Context, schoolID, actorID, id string, req leaverequest.ResubmitRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.resubmitFn(ctx, schoolID, actorID, id, req)
}
func (f *fakeLeaveService) ListForApprover(ctx context.Context, schoolID, actorID string) ([]leaverequest.LeaveRequestResponse, error) {
	return f.listForApproverFn(ctx, schoolID, actorID)
}
func (f *fakeLeaveService) ListForStudent(ctx context.Context, schoolID, studentID string) ([]leaverequest.LeaveRequestResponse, error) {
	return f.listForStudentFn(ctx, schoolID, studentID)
}
func (f *fakeLeaveService) ListMine(ctx context.Context, schoolID, actorID string) ([]leaverequest.LeaveRequestResponse, error) {
	return f.listMineFn(ctx, schoolID, actorID)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, schoolID string) ([]leaverequest.LeaveRequestResponse, error) {
	return f.getAllFn(ctx, schoolID)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, schoolID, id string) (leaverequest.LeaveRequestResponse, error) {
	return f.getByIDFn(ctx, schoolID, id)
}
func (f *fakeLeaveService) ListDecisions(ctx context.Context, schoolID, id string) ([]leaverequest.LeaveDecisionResponse, error) {
	return f.listDecisionsFn(ctx, schoolID, id)
}

func TestLeaveRequestHandler_Submit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		schoolID := uuid.New().String()
		actorID := uuid.New().String()

		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, sid, aid string, req leaverequest.SubmitLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, schoolID, sid)
				assert.Equal(t, actorID, aid)
				assert.Equal(t, "SL", req.LeaveType)
				return leaverequest.LeaveRequestResponse{
					ID:           uuid.New().String(),
					SchoolID:     sid,
					LeaveType:    req.LeaveType,
					DaysCount:    3,
					Status:       leaverequest.StatusPending,
					CurrentLevel: "Teacher",
				}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"SL","from_date":"2024-03-01","to_date":"2024-03-03","reason":"fever"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("school_id", schoolID)
		c.Set("user_id", actorID)

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leaverequest.LeaveRequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leaverequest.StatusPending, got.Status)
		assert.Equal(t, "Teacher", got.CurrentLevel)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := leaverequest.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("school_id", uuid.New().String())
		c.Set("user_id", uuid.New().String())

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestLeaveRequestHandler_ApplyDecision(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyDecisionFn: func(ctx context.Context, sid, aid, id string, req leaverequest.DecisionRequest) (leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, leaverequest.ActionApprove, req.Action)
				return leaverequest.LeaveRequestResponse{ID: id, Status: leaverequest.StatusApproved}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/x/decision", strings.NewReader(`{"action":"approve"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("school_id", uuid.New().String())
		c.Set("user_id", uuid.New().String())

		h.ApplyDecision(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative stale state maps to conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyDecisionFn: func(ctx context.Context, sid, aid, id string, req leaverequest.DecisionRequest) (leaverequest.LeaveRequestResponse, error) {
				return leaverequest.LeaveRequestResponse{}, leaverequesterrors.ErrStaleState
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/x/decision", strings.NewReader(`{"action":"approve"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("school_id", uuid.New().String())
		c.Set("user_id", uuid.New().String())

		h.ApplyDecision(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})
}

func TestLeaveRequestHandler_GetAll(t *testing.T) {
	t.Run("filters and paginates", func(t *testing.T) {
		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context, sid string) ([]leaverequest.LeaveRequestResponse, error) {
				return []leaverequest.LeaveRequestResponse{
					{ID: "a", StudentName: "Asha", Department: "CS", Status: "pending"},
					{ID: "b", StudentName: "Rahul", Department: "EE", Status: "approved"},
					{ID: "c", StudentName: "Meera", Department: "CS", Status: "pending"},
				}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves?status=pending&page=1&page_size=1", nil)
		c.Set("school_id", uuid.New().String())

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got []leaverequest.LeaveRequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ID)
	})
}

func TestLeaveRequestHandler_ListDecisions(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			listDecisionsFn: func(ctx context.Context, sid, id string) ([]leaverequest.LeaveDecisionResponse, error) {
				return []leaverequest.LeaveDecisionResponse{
					{ID: uuid.New().String(), Level: "Teacher", Action: "approve"},
					{ID: uuid.New().String(), Level: "HOD", Action: "return"},
				}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/x/decisions", nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("school_id", uuid.New().String())

		h.ListDecisions(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var got []leaverequest.LeaveDecisionResponse
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 2)
	})
}
