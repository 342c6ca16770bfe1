package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightpath-academy/institute-api/internal/dto"
	"github.com/brightpath-academy/institute-api/internal/service"
	appErrors "github.com/brightpath-academy/institute-api/pkg/errors"
	"github.com/brightpath-academy/institute-api/pkg/response"
)

// SyllabusHandler handles syllabus uploads and lead-gated downloads.
type SyllabusHandler struct {
	service *service.SyllabusService
}

// NewSyllabusHandler constructs a syllabus handler.
func NewSyllabusHandler(svc *service.SyllabusService) *SyllabusHandler {
	return &SyllabusHandler{service: svc}
}

// Upload godoc
// @Summary Upload course syllabus PDF
// @Tags Syllabus
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Course ID"
// @Param file formData file true "Syllabus PDF"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /admin/courses/{id}/syllabus [post]
func (h *SyllabusHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "syllabus file required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close()

	if err := h.service.Upload(c.Request.Context(), c.Param("id"), header.Filename, header.Size, file); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RequestDownload godoc
// @Summary Request a syllabus download link
// @Description Captures the visitor as a lead and returns a short-lived signed link
// @Tags Syllabus
// @Accept json
// @Produce json
// @Param slug path string true "Course slug"
// @Param payload body dto.SyllabusRequest true "Contact details"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{slug}/syllabus [post]
func (h *SyllabusHandler) RequestDownload(c *gin.Context) {
	var req dto.SyllabusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid request payload"))
		return
	}
	res, err := h.service.RequestDownload(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Download godoc
// @Summary Download a syllabus with a signed token
// @Tags Syllabus
// @Produce application/pdf
// @Param token path string true "Signed download token"
// @Success 200
// @Failure 403 {object} response.Envelope
// @Router /downloads/{token} [get]
func (h *SyllabusHandler) Download(c *gin.Context) {
	download, err := h.service.ResolveDownload(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close()

	info, err := download.File.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat syllabus file"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	c.DataFromReader(http.StatusOK, info.Size(), "application/pdf", download.File, nil)
}
