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

// TestimonialHandler handles testimonial endpoints.
type TestimonialHandler struct {
	service *service.TestimonialService
}

// NewTestimonialHandler constructs a testimonial handler.
func NewTestimonialHandler(svc *service.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{service: svc}
}

// ListPublic godoc
// @Summary List approved testimonials
// @Tags Testimonials
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /testimonials [get]
func (h *TestimonialHandler) ListPublic(c *gin.Context) {
	testimonials, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, testimonials, nil)
}

// ListAll godoc
// @Summary List all testimonials including unapproved
// @Tags Testimonials
// @Produce json
// @Param approved query bool false "Filter by approval flag"
// @Success 200 {object} response.Envelope
// @Router /admin/testimonials [get]
func (h *TestimonialHandler) ListAll(c *gin.Context) {
	var filter models.TestimonialFilter
	if raw := c.Query("approved"); raw != "" {
		if approved, err := strconv.ParseBool(raw); err == nil {
			filter.Approved = &approved
		}
	}

	testimonials, err := h.service.ListAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, testimonials, nil)
}

// Get godoc
// @Summary Get testimonial by id
// @Tags Testimonials
// @Produce json
// @Param id path string true "Testimonial ID"
// @Success 200 {object} response.Envelope
// @Router /admin/testimonials/{id} [get]
func (h *TestimonialHandler) Get(c *gin.Context) {
	testimonial, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, testimonial, nil)
}

// Create godoc
// @Summary Create testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param payload body dto.TestimonialRequest true "Testimonial payload"
// @Success 201 {object} response.Envelope
// @Router /admin/testimonials [post]
func (h *TestimonialHandler) Create(c *gin.Context) {
	var req dto.TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	testimonial, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, testimonial)
}

// Update godoc
// @Summary Update testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param id path string true "Testimonial ID"
// @Param payload body dto.TestimonialRequest true "Testimonial payload"
// @Success 200 {object} response.Envelope
// @Router /admin/testimonials/{id} [put]
func (h *TestimonialHandler) Update(c *gin.Context) {
	var req dto.TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	testimonial, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, testimonial, nil)
}

// Delete godoc
// @Summary Delete testimonial
// @Tags Testimonials
// @Produce json
// @Param id path string true "Testimonial ID"
// @Success 204
// @Router /admin/testimonials/{id} [delete]
func (h *TestimonialHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
