package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ashu-Az/employee-attendance/internal/attendance"
	attendanceerrors "github.com/Ashu-Az/employee-attendance/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	markFn          func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error)
	getByEmployeeFn func(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error)
	getAllFn        func(ctx context.Context, startDate, endDate string) ([]attendance.AttendanceResponse, error)
	removeAllFn     func(ctx context.Context, employeeID string) (int64, error)
}

func (f *fakeService) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
	return f.markFn(ctx, req)
}
func (f *fakeService) GetByEmployee(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	return f.getByEmployeeFn(ctx, employeeID)
}
func (f *fakeService) GetAll(ctx context.Context, startDate, endDate string) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, startDate, endDate)
}
func (f *fakeService) RemoveAllForEmployee(ctx context.Context, employeeID string) (int64, error) {
	return f.removeAllFn(ctx, employeeID)
}

func postJSON(t *testing.T, h func(*gin.Context), body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h(c)
	return w
}

func TestHandler_Mark_Created(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		markFn: func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
			assert.Equal(t, "EMP001", req.EmployeeID)
			return attendance.MarkAttendanceResponse{
				AttendanceResponse: attendance.AttendanceResponse{
					ID: "r1", EmployeeID: req.EmployeeID, Date: req.Date, Status: req.Status,
				},
				Updated: false,
			}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := postJSON(t, h.Mark, `{"employeeId":"EMP001","date":"2025-06-01","status":"Present"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"updated":false`)
}

func TestHandler_Mark_Overwrite(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		markFn: func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
			return attendance.MarkAttendanceResponse{
				AttendanceResponse: attendance.AttendanceResponse{
					ID: "r1", EmployeeID: req.EmployeeID, Date: req.Date, Status: req.Status,
				},
				Updated: true,
			}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := postJSON(t, h.Mark, `{"employeeId":"EMP001","date":"2025-06-01","status":"Absent"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"updated":true`)
	assert.Contains(t, w.Body.String(), `"status":"Absent"`)
}

func TestHandler_Mark_MissingField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		markFn: func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
			t.Fatal("service must not be called on binding failure")
			return attendance.MarkAttendanceResponse{}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := postJSON(t, h.Mark, `{"employeeId":"EMP001","status":"Present"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestHandler_Mark_UnknownEmployee(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		markFn: func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
			return attendance.MarkAttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
		},
	}
	h := attendance.NewHandler(svc)

	w := postJSON(t, h.Mark, `{"employeeId":"GHOST","date":"2025-06-01","status":"Present"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestHandler_GetByEmployee(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getByEmployeeFn: func(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
			assert.Equal(t, "EMP001", employeeID)
			return []attendance.AttendanceResponse{
				{ID: "r2", EmployeeID: employeeID, Date: "2025-06-02", Status: attendance.StatusAbsent},
				{ID: "r1", EmployeeID: employeeID, Date: "2025-06-01", Status: attendance.StatusPresent},
			}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "employeeId", Value: "EMP001"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance/employee/EMP001", nil)
	h.GetByEmployee(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2025-06-02")
}

func TestHandler_GetAll_ForwardsDateBounds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getAllFn: func(ctx context.Context, startDate, endDate string) ([]attendance.AttendanceResponse, error) {
			assert.Equal(t, "2025-01-01", startDate)
			assert.Equal(t, "2025-01-31", endDate)
			return []attendance.AttendanceResponse{}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance?startDate=2025-01-01&endDate=2025-01-31", nil)
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
