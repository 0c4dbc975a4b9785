package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lexhub_backend/internal/services"
	"lexhub_backend/pkg/apperrors"
)

// FileHandler serves stored documents back by their relative path,
// e.g. GET /api/files/headshots/<uuid>.jpg.
type FileHandler struct {
	*BaseHandler
	uploads services.UploadService
}

func NewFileHandler(base *BaseHandler, uploads services.UploadService) *FileHandler {
	return &FileHandler{BaseHandler: base, uploads: uploads}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	{
		files.GET("/*path", h.Serve)
	}
}

func (h *FileHandler) Serve(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || strings.Contains(path, "..") {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid file path"))
		return
	}

	reader, upload, err := h.uploads.Open(c.Request.Context(), path)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `inline; filename="`+upload.FileName+`"`)
	c.DataFromReader(http.StatusOK, upload.Size, upload.ContentType, reader, nil)
}
