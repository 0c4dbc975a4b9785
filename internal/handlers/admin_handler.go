package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lexhub_backend/internal/middleware"
	"lexhub_backend/internal/models"
	"lexhub_backend/internal/repositories"
	"lexhub_backend/internal/services"
	"lexhub_backend/internal/services/dto"
)

type AdminHandler struct {
	*BaseHandler
	users    services.UserService
	profiles services.LawyerProfileService
}

func NewAdminHandler(base *BaseHandler, users services.UserService, profiles services.LawyerProfileService) *AdminHandler {
	return &AdminHandler{BaseHandler: base, users: users, profiles: profiles}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.CreateUser)
		admin.GET("/users/:id", h.GetUser)
		admin.PATCH("/users/:id", h.UpdateUser)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.GET("/profiles/pending", h.ListPendingProfiles)
		admin.POST("/profiles/:id/approve", h.ApproveProfile)
		admin.POST("/profiles/:id/reject", h.RejectProfile)

		admin.GET("/stats", h.DashboardStats)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var filter repositories.UserFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	resp, err := h.users.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.users.AdminCreate(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AdminUpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.users.AdminUpdate(c.Request.Context(), adminID, c.Param("id"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.users.AdminDelete(c.Request.Context(), adminID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *AdminHandler) ListPendingProfiles(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, err := h.profiles.ListPendingReview(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ApproveProfile(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profiles.Approve(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AdminHandler) RejectProfile(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RejectProfileRequest
	_ = c.ShouldBind(&req) // body is optional, reason falls back to the default

	profile, err := h.profiles.Reject(c.Request.Context(), c.Param("id"), adminID, req.Reason)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.users.DashboardStats(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
