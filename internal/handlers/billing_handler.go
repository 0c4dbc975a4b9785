package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"lexhub_backend/internal/middleware"
	"lexhub_backend/internal/models"
	"lexhub_backend/internal/services"
	"lexhub_backend/internal/services/dto"
	"lexhub_backend/pkg/apperrors"
)

// Stripe caps event payloads well below this.
const maxWebhookBody = 1 << 16

type BillingHandler struct {
	*BaseHandler
	billing services.BillingService
}

func NewBillingHandler(base *BaseHandler, billing services.BillingService) *BillingHandler {
	return &BillingHandler{BaseHandler: base, billing: billing}
}

// RegisterRoutes mounts the webhook; it must stay outside auth since
// Stripe signs its own requests.
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stripe := rg.Group("/stripe")
	{
		stripe.POST("/webhook", h.Webhook)
	}
}

func (h *BillingHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	stripe := rg.Group("/stripe", middleware.RequireRoles(models.UserRoleLawyer))
	{
		stripe.POST("/checkout", h.CreateCheckout)
	}
}

func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCheckoutRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.billing.CreateCheckout(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Webhook reads the raw body so the signature check sees the exact bytes
// Stripe signed.
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to read webhook body"))
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.billing.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
