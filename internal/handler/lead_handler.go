package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brightpath-academy/institute-api/internal/dto"
	"github.com/brightpath-academy/institute-api/internal/models"
	"github.com/brightpath-academy/institute-api/internal/service"
	appErrors "github.com/brightpath-academy/institute-api/pkg/errors"
	"github.com/brightpath-academy/institute-api/pkg/response"
)

// LeadHandler handles lead capture and admin lead listing.
type LeadHandler struct {
	service *service.LeadService
}

// NewLeadHandler constructs a lead handler.
func NewLeadHandler(svc *service.LeadService) *LeadHandler {
	return &LeadHandler{service: svc}
}

// Capture godoc
// @Summary Capture a lead from an enquiry form
// @Tags Leads
// @Accept json
// @Produce json
// @Param payload body dto.LeadRequest true "Lead payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /leads [post]
func (h *LeadHandler) Capture(c *gin.Context) {
	var req dto.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid lead payload"))
		return
	}
	lead, err := h.service.Capture(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lead)
}

// List godoc
// @Summary List captured leads
// @Tags Leads
// @Produce json
// @Param source query string false "Filter by source"
// @Success 200 {object} response.Envelope
// @Router /admin/leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	filter := models.LeadFilter{Source: strings.TrimSpace(c.Query("source"))}
	leads, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, leads, nil)
}
