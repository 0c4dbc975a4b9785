package models

import "time"

type User struct {
	BaseModel
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash *string    `json:"-"` // nil for OAuth-only accounts
	Role         UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`

	// OAuth identity
	AuthProvider string  `gorm:"type:varchar(20);default:'local'" json:"auth_provider"`
	GoogleSub    *string `gorm:"uniqueIndex" json:"-"`

	// Billing linkage; webhook handlers are the sole writers of the
	// subscription status fields
	StripeCustomerID     *string            `gorm:"uniqueIndex" json:"-"`
	StripeSubscriptionID *string            `json:"-"`
	SubscriptionPlan     string             `json:"subscription_plan,omitempty"`
	SubscriptionStatus   SubscriptionStatus `gorm:"type:varchar(20)" json:"subscription_status,omitempty"`

	// Relations
	LawyerProfile *LawyerProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"lawyer_profile,omitempty"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Uploads       []Upload       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
