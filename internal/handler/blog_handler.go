package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brightpath-academy/institute-api/internal/dto"
	"github.com/brightpath-academy/institute-api/internal/models"
	"github.com/brightpath-academy/institute-api/internal/service"
	appErrors "github.com/brightpath-academy/institute-api/pkg/errors"
	"github.com/brightpath-academy/institute-api/pkg/response"
)

// BlogHandler handles blog endpoints.
type BlogHandler struct {
	service *service.BlogService
}

// NewBlogHandler constructs a blog handler.
func NewBlogHandler(svc *service.BlogService) *BlogHandler {
	return &BlogHandler{service: svc}
}

// ListPublic godoc
// @Summary List published blog posts
// @Tags Blog
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Envelope
// @Router /blog [get]
func (h *BlogHandler) ListPublic(c *gin.Context) {
	posts, err := h.service.ListPublic(c.Request.Context(), strings.TrimSpace(c.Query("category")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts, nil)
}

// GetBySlug godoc
// @Summary Get published blog post by slug
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /blog/{slug} [get]
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	post, err := h.service.GetPublicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, post, nil)
}

// ListAll godoc
// @Summary List all blog posts including drafts
// @Tags Blog
// @Produce json
// @Param published query bool false "Filter by published flag"
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Envelope
// @Router /admin/blog [get]
func (h *BlogHandler) ListAll(c *gin.Context) {
	var filter models.BlogFilter
	filter.Category = strings.TrimSpace(c.Query("category"))
	if raw := c.Query("published"); raw != "" {
		if published, err := strconv.ParseBool(raw); err == nil {
			filter.Published = &published
		}
	}

	posts, err := h.service.ListAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts, nil)
}

// Get godoc
// @Summary Get blog post by id
// @Tags Blog
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.Envelope
// @Router /admin/blog/{id} [get]
func (h *BlogHandler) Get(c *gin.Context) {
	post, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, post, nil)
}

// Create godoc
// @Summary Create blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param payload body dto.BlogPostRequest true "Post payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/blog [post]
func (h *BlogHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	post, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

// Update godoc
// @Summary Update blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param payload body dto.BlogPostRequest true "Post payload"
// @Success 200 {object} response.Envelope
// @Router /admin/blog/{id} [put]
func (h *BlogHandler) Update(c *gin.Context) {
	var req dto.BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	post, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, post, nil)
}

// Delete godoc
// @Summary Delete blog post
// @Tags Blog
// @Produce json
// @Param id path string true "Post ID"
// @Success 204
// @Router /admin/blog/{id} [delete]
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
