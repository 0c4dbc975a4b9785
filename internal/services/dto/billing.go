package dto

type CreateCheckoutRequest struct {
	Plan string `json:"plan" binding:"required,oneof=monthly yearly"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}
