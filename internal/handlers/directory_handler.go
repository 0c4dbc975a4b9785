package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lexhub_backend/internal/middleware"
	"lexhub_backend/internal/services"
	"lexhub_backend/internal/services/dto"
)

// DirectoryHandler is the public face of the marketplace: searching,
// viewing, and contacting approved lawyers. No auth required.
type DirectoryHandler struct {
	*BaseHandler
	directory services.DirectoryService
}

func NewDirectoryHandler(base *BaseHandler, directory services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{BaseHandler: base, directory: directory}
}

func (h *DirectoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Optional auth so a logged-in client gets linked to the contact
	// requests they send.
	directory := rg.Group("/directory", middleware.OptionalAuthMiddleware())
	{
		directory.GET("", h.Search)
		directory.GET("/:id", h.GetProfile)
		directory.POST("/:id/contact", h.Contact)
	}
}

func (h *DirectoryHandler) Search(c *gin.Context) {
	var req dto.DirectorySearchRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	resp, err := h.directory.Search(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DirectoryHandler) GetProfile(c *gin.Context) {
	entry, err := h.directory.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *DirectoryHandler) Contact(c *gin.Context) {
	var req dto.ContactLawyerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	// The sender may be an anonymous visitor; a logged-in client gets
	// linked to the request.
	var clientID *string
	if id := middleware.GetUserID(c); id != "" {
		clientID = &id
	}

	err := h.directory.ContactLawyer(c.Request.Context(), c.Param("id"), clientID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Message sent"})
}
