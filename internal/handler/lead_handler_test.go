package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brightpath-academy/institute-api/internal/dto"
	"github.com/brightpath-academy/institute-api/internal/models"
	"github.com/brightpath-academy/institute-api/internal/service"
)

type leadRepoMock struct {
	created *models.Lead
	leads   []models.Lead
}

func (m *leadRepoMock) Create(ctx context.Context, lead *models.Lead) error {
	lead.ID = "lead-1"
	m.created = lead
	return nil
}

func (m *leadRepoMock) List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	return m.leads, nil
}

func TestLeadHandlerCapture(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &leadRepoMock{}
	handler := NewLeadHandler(service.NewLeadService(repo, nil, nil, zap.NewNop()))

	payload, _ := json.Marshal(dto.LeadRequest{
		Name:   "Asha",
		Email:  "asha@example.com",
		Phone:  "+911234567890",
		Source: "contact_form",
	})
	c, w := newGinContext(http.MethodPost, "/leads", payload)

	handler.Capture(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.created)
	require.Equal(t, "contact_form", repo.created.Source)
}

func TestLeadHandlerCaptureRejectsInvalidEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &leadRepoMock{}
	handler := NewLeadHandler(service.NewLeadService(repo, nil, nil, zap.NewNop()))

	payload, _ := json.Marshal(dto.LeadRequest{
		Name:   "Asha",
		Email:  "not-an-email",
		Phone:  "+911234567890",
		Source: "contact_form",
	})
	c, w := newGinContext(http.MethodPost, "/leads", payload)

	handler.Capture(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Nil(t, repo.created)
}

func TestLeadHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &leadRepoMock{leads: []models.Lead{{ID: "lead-1", Name: "Asha", Source: "quiz"}}}
	handler := NewLeadHandler(service.NewLeadService(repo, nil, nil, zap.NewNop()))

	c, w := newGinContext(http.MethodGet, "/admin/leads?source=quiz", nil)

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "lead-1")
}
