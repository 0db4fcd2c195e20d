package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP_AppError(t *testing.T) {
	err := New(CodeNotFound, "Employee not found", http.StatusNotFound)

	res := ToHTTP(err)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, CodeNotFound, res.Code)
	assert.Equal(t, "Employee not found", res.Message)
}

func TestToHTTP_WrappedAppError(t *testing.T) {
	inner := New(CodeConflict, "Employee ID is already taken", http.StatusConflict)
	wrapped := fmt.Errorf("create employee: %w", inner)

	res := ToHTTP(wrapped)
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, CodeConflict, res.Code)
}

func TestToHTTP_UnknownErrorCollapsesTo500(t *testing.T) {
	res := ToHTTP(errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, CodeInternalError, res.Code)
	// the raw error text must not leak into the response
	assert.NotContains(t, res.Message, "connection refused")
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeInternalError, "should not happen", http.StatusInternalServerError))
}

func TestWrap_PreservesCauseForErrorsIs(t *testing.T) {
	cause := errors.New("duplicate key value")
	err := Wrap(cause, CodeConflict, "Employee ID is already taken", http.StatusConflict)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "duplicate key value")
}
