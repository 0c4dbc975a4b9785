package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lexhub_backend/internal/middleware"
	"lexhub_backend/internal/models"
	"lexhub_backend/internal/services"
	"lexhub_backend/internal/services/dto"
)

// LawyerHandler serves the lawyer's own onboarding: the seven profile
// steps, completion state, review submission, and the contact inbox.
type LawyerHandler struct {
	*BaseHandler
	profiles  services.LawyerProfileService
	directory services.DirectoryService
	uploads   services.UploadService
}

func NewLawyerHandler(
	base *BaseHandler,
	profiles services.LawyerProfileService,
	directory services.DirectoryService,
	uploads services.UploadService,
) *LawyerHandler {
	return &LawyerHandler{
		BaseHandler: base,
		profiles:    profiles,
		directory:   directory,
		uploads:     uploads,
	}
}

func (h *LawyerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	lawyers := rg.Group("/lawyers", middleware.RequireRoles(models.UserRoleLawyer))
	{
		lawyers.GET("/me/profile", h.GetProfile)
		lawyers.GET("/me/completion", h.GetCompletion)
		lawyers.POST("/me/submit", h.SubmitForReview)

		steps := lawyers.Group("/me/steps")
		{
			steps.PUT("/identity", h.UpdateIdentity)
			steps.PUT("/contact", h.UpdateContact)
			steps.PUT("/practice", h.UpdatePractice)
			steps.PUT("/biography", h.UpdateBiography)
			steps.PUT("/social", h.UpdateSocial)
			steps.PUT("/case-stories", h.UpdateCaseStories)
			steps.PUT("/verification", h.UpdateVerification)
		}

		lawyers.GET("/me/contact-requests", h.ListContactRequests)
		lawyers.POST("/me/contact-requests/:id/read", h.MarkContactRead)
	}
}

func (h *LawyerHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.profiles.GetOwnProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LawyerHandler) GetCompletion(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.profiles.GetCompletion(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LawyerHandler) SubmitForReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.profiles.SubmitForReview(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LawyerHandler) UpdateIdentity(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.IdentityStepRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	h.respondCompletion(c, func() (*dto.CompletionResponse, error) {
		return h.profiles.UpdateIdentity(c.Request.Context(), userID, req)
	})
}

func (h *LawyerHandler) UpdateContact(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ContactStepRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	h.respondCompletion(c, func() (*dto.CompletionResponse, error) {
		return h.profiles.UpdateContact(c.Request.Context(), userID, req)
	})
}

// UpdatePractice accepts multipart form-data so the CV can ride along
// with the step fields.
func (h *LawyerHandler) UpdatePractice(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PracticeStepRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if url, ok := h.saveStepFile(c, userID, "cv", models.UploadPurposeCV); !ok {
		return
	} else if url != "" {
		req.CVURL = url
	}

	h.respondCompletion(c, func() (*dto.CompletionResponse, error) {
		return h.profiles.UpdatePractice(c.Request.Context(), userID, req)
	})
}

func (h *LawyerHandler) UpdateBiography(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.BiographyStepRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if url, ok := h.saveStepFile(c, userID, "headshot", models.UploadPurposeHeadshot); !ok {
		return
	} else if url != "" {
		req.HeadshotURL = url
	}

	h.respondCompletion(c, func() (*dto.CompletionResponse, error) {
		return h.profiles.UpdateBiography(c.Request.Context(), userID, req)
	})
}

func (h *LawyerHandler) UpdateSocial(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SocialStepRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	h.respondCompletion(c, func() (*dto.CompletionResponse, error) {
		return h.profiles.UpdateSocial(c.Request.Context(), userID, req)
	})
}

func (h *LawyerHandler) UpdateCaseStories(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CaseStoriesStepRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	h.respondCompletion(c, func() (*dto.CompletionResponse, error) {
		return h.profiles.UpdateCaseStories(c.Request.Context(), userID, req)
	})
}

func (h *LawyerHandler) UpdateVerification(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.VerificationStepRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if url, ok := h.saveStepFile(c, userID, "document", models.UploadPurposeVerification); !ok {
		return
	} else if url != "" {
		req.VerificationDocURL = url
	}

	h.respondCompletion(c, func() (*dto.CompletionResponse, error) {
		return h.profiles.UpdateVerification(c.Request.Context(), userID, req)
	})
}

func (h *LawyerHandler) ListContactRequests(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	resp, err := h.directory.ListContactRequests(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LawyerHandler) MarkContactRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.directory.MarkContactRead(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}

// saveStepFile stores the named multipart file when present. The empty
// URL with ok=true means no file was sent.
func (h *LawyerHandler) saveStepFile(c *gin.Context, userID, field string, purpose models.UploadPurpose) (string, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		return "", true
	}

	upload, err := h.uploads.SaveFile(c.Request.Context(), userID, purpose, header)
	if err != nil {
		h.HandleServiceError(c, err)
		return "", false
	}
	return upload.URL, true
}

func (h *LawyerHandler) respondCompletion(c *gin.Context, call func() (*dto.CompletionResponse, error)) {
	resp, err := call()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
