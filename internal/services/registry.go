package services

import (
	"gorm.io/gorm"

	"lexhub_backend/internal/billing"
	"lexhub_backend/internal/repositories"
	"lexhub_backend/internal/storage"
)

// ServiceContainer wires every service with its repositories. Handlers
// receive this as their single dependency.
type ServiceContainer struct {
	Auth      AuthService
	OAuth     OAuthService
	Users     UserService
	Profiles  LawyerProfileService
	Directory DirectoryService
	Billing   BillingService
	Uploads   UploadService
}

func NewServiceContainer(db *gorm.DB, store storage.Storage, provider billing.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewLawyerProfileRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)
	uploadRepo := repositories.NewUploadRepository(db)
	contactRepo := repositories.NewContactRequestRepository(db)

	return &ServiceContainer{
		Auth:      NewAuthService(userRepo, profileRepo, tokenRepo),
		OAuth:     NewOAuthService(userRepo, tokenRepo),
		Users:     NewUserService(userRepo, profileRepo, tokenRepo),
		Profiles:  NewLawyerProfileService(profileRepo, userRepo),
		Directory: NewDirectoryService(profileRepo, contactRepo),
		Billing:   NewBillingService(provider, userRepo, profileRepo),
		Uploads:   NewUploadService(store, uploadRepo),
	}
}
