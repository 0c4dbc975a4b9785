package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lexhub_backend/internal/services"
)

type UserHandler struct {
	*BaseHandler
	users   services.UserService
	uploads services.UploadService
}

func NewUserHandler(base *BaseHandler, users services.UserService, uploads services.UploadService) *UserHandler {
	return &UserHandler{BaseHandler: base, users: users, uploads: uploads}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("/me", h.GetMe)
		users.GET("/me/uploads", h.ListUploads)
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListUploads(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	uploads, err := h.uploads.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": uploads})
}
