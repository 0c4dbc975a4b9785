package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"lexhub_backend/internal/config"
	"lexhub_backend/internal/logger"
	"lexhub_backend/internal/models"
	"lexhub_backend/internal/repositories"
	"lexhub_backend/internal/services/dto"
	"lexhub_backend/pkg/apperrors"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type OAuthService interface {
	// GoogleAuthURL builds the consent-screen URL the frontend redirects to.
	GoogleAuthURL(state string) string

	// HandleGoogleCallback exchanges the authorization code, resolves or
	// creates the user, and issues a session.
	HandleGoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error)
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type OAuthServiceImpl struct {
	userRepo    repositories.UserRepository
	tokenRepo   repositories.RefreshTokenRepository
	oauthConfig *oauth2.Config
}

func NewOAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.RefreshTokenRepository,
) OAuthService {
	cfg := config.GetConfig()
	return &OAuthServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.OAuth.GoogleClientID,
			ClientSecret: cfg.OAuth.GoogleClientSecret,
			RedirectURL:  cfg.OAuth.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (s *OAuthServiceImpl) GoogleAuthURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (s *OAuthServiceImpl) HandleGoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "oauth",
			"Google code exchange failed", http.StatusBadGateway)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "oauth",
			"Failed to fetch Google user info", http.StatusBadGateway)
	}
	if info.Email == "" {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "oauth",
			"Google account has no email", http.StatusBadRequest)
	}

	user, err := s.findOrCreateUser(ctx, info)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDeactivated
	}

	return issueTokens(s.tokenRepo, user)
}

func (s *OAuthServiceImpl) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *OAuthServiceImpl) findOrCreateUser(ctx context.Context, info *googleUserInfo) (*models.User, error) {
	user, err := s.userRepo.FindByGoogleSub(info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	// Link an existing local account by email.
	user, err = s.userRepo.FindByEmail(info.Email)
	if err == nil {
		if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{"google_sub": info.ID}); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.GoogleSub = &info.ID
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	// First sign-in: OAuth accounts come in as clients, a lawyer can be
	// promoted by an admin afterwards.
	sub := info.ID
	user = &models.User{
		Name:         info.Name,
		Email:        info.Email,
		Role:         models.UserRoleClient,
		Status:       models.UserStatusPending,
		IsActive:     true,
		AuthProvider: "google",
		GoogleSub:    &sub,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "google user created", "user_id", user.ID)
	return user, nil
}
