// internal/utils/response_test.go
package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivelane/dealer-backend/internal/apperrors"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func TestAppErrorResponseMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unauthorized",
			err:        apperrors.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "forbidden",
			err:        &apperrors.ForbiddenError{Reason: "sellers may only view their own requests"},
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:       "not found",
			err:        &apperrors.NotFoundError{Resource: "client"},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "invalid transition",
			err:        &apperrors.InvalidTransitionError{Current: "approved", Requested: "submitted"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_TRANSITION",
		},
		{
			name:       "validation",
			err:        apperrors.ErrValidation,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "untyped",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newTestContext(t)

			AppErrorResponse(c, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			apiErr := decodeError(t, w)
			assert.Equal(t, tc.wantCode, apiErr.Code)
		})
	}
}

func TestAppErrorResponseHidesInternalDetail(t *testing.T) {
	c, w := newTestContext(t)

	AppErrorResponse(c, errors.New("pq: password authentication failed"))

	apiErr := decodeError(t, w)
	assert.NotContains(t, apiErr.Message, "pq:")
	assert.NotContains(t, apiErr.Message, "password")
}

func TestInvalidTransitionMessageNamesCurrentStatus(t *testing.T) {
	c, w := newTestContext(t)

	AppErrorResponse(c, &apperrors.InvalidTransitionError{
		Current:   "under_review",
		Requested: "submitted",
	})

	apiErr := decodeError(t, w)
	assert.Contains(t, apiErr.Message, "under_review")
	assert.Contains(t, apiErr.Message, "submitted")
}

func TestContextAccessors(t *testing.T) {
	c, _ := newTestContext(t)

	_, ok := GetUserIDFromContext(c)
	assert.False(t, ok)

	c.Set("user_id", "8c5d9fd2-0a43-4d54-8a7a-2b43a1f0a001")
	c.Set("tenant_id", "d2b4c7e1-91f8-4b5f-9f63-77a2b0c4e002")
	c.Set("role", "seller")
	c.Set("lang", "es")

	userID, ok := GetUserIDFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, "8c5d9fd2-0a43-4d54-8a7a-2b43a1f0a001", userID)

	tenantID, ok := GetTenantIDFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, "d2b4c7e1-91f8-4b5f-9f63-77a2b0c4e002", tenantID)

	role, ok := GetRoleFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, "seller", role)

	assert.Equal(t, "es", GetLangFromContext(c))
}
