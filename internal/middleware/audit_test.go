package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath-academy/institute-api/internal/models"
)

type auditSinkMock struct {
	entries []*models.AuditLog
}

func (m *auditSinkMock) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	m.entries = append(m.entries, entry)
	return nil
}

func auditTestRouter(sink *auditSinkMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextUserKey, &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin})
	})
	r.GET("/admin/leads", Audit(sink, "leads"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})
	r.DELETE("/admin/courses/:id", Audit(sink, "content"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.POST("/admin/courses", Audit(sink, "content"), func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{})
	})
	return r
}

func TestAuditRecordsSuccessfulRequests(t *testing.T) {
	sink := &auditSinkMock{}
	r := auditTestRouter(sink)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/leads", nil))
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, sink.entries, 1)
	entry := sink.entries[0]
	assert.Equal(t, models.AuditActionRead, entry.Action)
	assert.Equal(t, "leads", entry.Resource)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u1", *entry.UserID)
	assert.Contains(t, string(entry.Details), "/admin/leads")
}

func TestAuditDerivesActionFromMethod(t *testing.T) {
	sink := &auditSinkMock{}
	r := auditTestRouter(sink)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/courses/c1", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	require.Len(t, sink.entries, 1)
	assert.Equal(t, models.AuditActionDelete, sink.entries[0].Action)
	assert.Equal(t, "content", sink.entries[0].Resource)
}

func TestAuditSkipsFailedRequests(t *testing.T) {
	sink := &auditSinkMock{}
	r := auditTestRouter(sink)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/courses", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, sink.entries)
}
