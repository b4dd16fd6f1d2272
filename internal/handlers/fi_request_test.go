// internal/handlers/fi_request_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/drivelane/dealer-backend/internal/middleware"
)

// newRequestRouter wires the handler behind a fake auth layer so request
// parsing and guard paths can be exercised without a database. An empty
// role means no auth context at all.
func newRequestRouter(handler *FIRequestHandler, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if role != "" {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", uuid.New().String())
			c.Set("tenant_id", uuid.New().String())
			c.Set("role", role)
		})
	}
	r.POST("/fi-requests", middleware.SellerRequired(), handler.Create)
	r.GET("/fi-requests", handler.List)
	r.GET("/fi-requests/metrics", handler.Metrics)
	r.GET("/fi-requests/:id", handler.Get)
	r.POST("/fi-requests/:id/submit", handler.Submit)
	return r
}

func TestFIRequestHandlerRequiresAuthContext(t *testing.T) {
	handler := NewFIRequestHandler(nil, nil)
	router := newRequestRouter(handler, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fi-requests", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFIRequestHandlerCreateRequiresSellerRole(t *testing.T) {
	handler := NewFIRequestHandler(nil, nil)

	for _, role := range []string{"admin", "dealer", "fi_manager"} {
		router := newRequestRouter(handler, role)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/fi-requests",
			strings.NewReader(`{"client_id":"`+uuid.NewString()+`"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code, "role %s", role)
	}

	// The seller passes the role gate and fails on the malformed body
	// instead, without reaching the service.
	router := newRequestRouter(handler, "seller")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/fi-requests", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFIRequestHandlerRejectsBadID(t *testing.T) {
	handler := NewFIRequestHandler(nil, nil)
	router := newRequestRouter(handler, "seller")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fi-requests/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFIRequestHandlerRejectsBadStatusFilter(t *testing.T) {
	handler := NewFIRequestHandler(nil, nil)
	router := newRequestRouter(handler, "seller")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fi-requests?status=cancelled", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFIRequestHandlerRejectsBadDateRange(t *testing.T) {
	handler := NewFIRequestHandler(nil, nil)
	router := newRequestRouter(handler, "seller")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fi-requests/metrics?start_date=yesterday", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet,
		"/fi-requests/metrics?start_date=2026-02-01&end_date=2026-01-01", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseDateFormats(t *testing.T) {
	day, err := parseDate("2026-03-15")
	assert.NoError(t, err)
	assert.Equal(t, 2026, day.Year())

	stamped, err := parseDate("2026-03-15T10:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 10, stamped.Hour())

	_, err = parseDate("15/03/2026")
	assert.Error(t, err)
}
