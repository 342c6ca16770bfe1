package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brightpath-academy/institute-api/internal/dto"
	"github.com/brightpath-academy/institute-api/internal/models"
	"github.com/brightpath-academy/institute-api/internal/service"
	appErrors "github.com/brightpath-academy/institute-api/pkg/errors"
	"github.com/brightpath-academy/institute-api/pkg/response"
)

// FAQHandler handles FAQ endpoints.
type FAQHandler struct {
	service *service.FAQService
}

// NewFAQHandler constructs a FAQ handler.
func NewFAQHandler(svc *service.FAQService) *FAQHandler {
	return &FAQHandler{service: svc}
}

// ListPublic godoc
// @Summary List active FAQs in display order
// @Tags FAQs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /faqs [get]
func (h *FAQHandler) ListPublic(c *gin.Context) {
	faqs, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faqs, nil)
}

// ListAll godoc
// @Summary List all FAQs including inactive
// @Tags FAQs
// @Produce json
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} response.Envelope
// @Router /admin/faqs [get]
func (h *FAQHandler) ListAll(c *gin.Context) {
	var filter models.FAQFilter
	if raw := c.Query("active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			filter.Active = &active
		}
	}

	faqs, err := h.service.ListAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faqs, nil)
}

// Get godoc
// @Summary Get FAQ by id
// @Tags FAQs
// @Produce json
// @Param id path string true "FAQ ID"
// @Success 200 {object} response.Envelope
// @Router /admin/faqs/{id} [get]
func (h *FAQHandler) Get(c *gin.Context) {
	faq, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faq, nil)
}

// Create godoc
// @Summary Create FAQ
// @Tags FAQs
// @Accept json
// @Produce json
// @Param payload body dto.FAQRequest true "FAQ payload"
// @Success 201 {object} response.Envelope
// @Router /admin/faqs [post]
func (h *FAQHandler) Create(c *gin.Context) {
	var req dto.FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	faq, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, faq)
}

// Update godoc
// @Summary Update FAQ
// @Tags FAQs
// @Accept json
// @Produce json
// @Param id path string true "FAQ ID"
// @Param payload body dto.FAQRequest true "FAQ payload"
// @Success 200 {object} response.Envelope
// @Router /admin/faqs/{id} [put]
func (h *FAQHandler) Update(c *gin.Context) {
	var req dto.FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	faq, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faq, nil)
}

// Delete godoc
// @Summary Delete FAQ
// @Tags FAQs
// @Produce json
// @Param id path string true "FAQ ID"
// @Success 204
// @Router /admin/faqs/{id} [delete]
func (h *FAQHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
