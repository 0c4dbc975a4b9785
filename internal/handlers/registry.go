package handlers

import (
	"lexhub_backend/internal/services"
	"lexhub_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler in the application.
type AppHandlers struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Lawyers   *LawyerHandler
	Directory *DirectoryHandler
	Admin     *AdminHandler
	Billing   *BillingHandler
	Files     *FileHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:      NewAuthHandler(base, container.Auth, container.OAuth),
		Users:     NewUserHandler(base, container.Users, container.Uploads),
		Lawyers:   NewLawyerHandler(base, container.Profiles, container.Directory, container.Uploads),
		Directory: NewDirectoryHandler(base, container.Directory),
		Admin:     NewAdminHandler(base, container.Users, container.Profiles),
		Billing:   NewBillingHandler(base, container.Billing),
		Files:     NewFileHandler(base, container.Uploads),
	}
}
