package dto

import (
	"time"

	"lexhub_backend/internal/models"
)

type ContactLawyerRequest struct {
	SenderName  string `json:"sender_name" binding:"required,min=2,max=100"`
	SenderEmail string `json:"sender_email" binding:"required,email"`
	Subject     string `json:"subject" binding:"required,min=3,max=200"`
	Message     string `json:"message" binding:"required,min=10,max=5000"`
}

type ContactRequestDTO struct {
	ID          string    `json:"id"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewContactRequestDTO(cr *models.ContactRequest) ContactRequestDTO {
	return ContactRequestDTO{
		ID:          cr.ID,
		SenderName:  cr.SenderName,
		SenderEmail: cr.SenderEmail,
		Subject:     cr.Subject,
		Message:     cr.Message,
		IsRead:      cr.IsRead,
		CreatedAt:   cr.CreatedAt,
	}
}
