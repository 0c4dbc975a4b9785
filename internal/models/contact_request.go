package models

// ContactRequest is a message a client sends to a lawyer through the
// public directory.
type ContactRequest struct {
	BaseModel
	LawyerID    string `gorm:"not null;index" json:"lawyer_id"` // LawyerProfile ID
	ClientID    *string `gorm:"index" json:"client_id,omitempty"` // nil for anonymous visitors
	SenderName  string `gorm:"not null" json:"sender_name"`
	SenderEmail string `gorm:"not null" json:"sender_email"`
	Subject     string `json:"subject"`
	Message     string `gorm:"not null" json:"message"`
	IsRead      bool   `gorm:"default:false" json:"is_read"`
}
