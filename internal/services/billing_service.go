package services

import (
	"context"
	"errors"
	"net/http"

	"lexhub_backend/internal/billing"
	"lexhub_backend/internal/config"
	"lexhub_backend/internal/logger"
	"lexhub_backend/internal/models"
	"lexhub_backend/internal/repositories"
	"lexhub_backend/internal/services/dto"
	"lexhub_backend/pkg/apperrors"
)

type BillingService interface {
	// CreateCheckout starts a subscription checkout for the lawyer and
	// returns the redirect URL.
	CreateCheckout(ctx context.Context, userID string, req dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error)

	// HandleWebhook verifies and applies one provider event. Unknown
	// event types are ignored without error.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type BillingServiceImpl struct {
	provider    billing.Provider
	userRepo    repositories.UserRepository
	profileRepo repositories.LawyerProfileRepository
}

func NewBillingService(
	provider billing.Provider,
	userRepo repositories.UserRepository,
	profileRepo repositories.LawyerProfileRepository,
) BillingService {
	return &BillingServiceImpl{
		provider:    provider,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (s *BillingServiceImpl) CreateCheckout(ctx context.Context, userID string, req dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if user.Role != models.UserRoleLawyer {
		return nil, apperrors.ErrInvalidUserRole
	}

	cfg := config.GetConfig()
	priceID := cfg.Stripe.PriceMonthly
	if req.Plan == "yearly" {
		priceID = cfg.Stripe.PriceYearly
	}

	customerID, err := s.ensureCustomer(ctx, user)
	if err != nil {
		return nil, err
	}

	url, err := s.provider.CreateCheckoutSession(ctx, customerID, user.ID, priceID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "billing",
			"Failed to create checkout session", http.StatusBadGateway)
	}

	logger.CtxInfo(ctx, "checkout session created", "user_id", userID, "plan", req.Plan)
	return &dto.CheckoutResponse{URL: url}, nil
}

func (s *BillingServiceImpl) ensureCustomer(ctx context.Context, user *models.User) (string, error) {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}

	customerID, err := s.provider.EnsureCustomer(ctx, user.ID, user.Email, user.Name)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeExternalServiceError, "billing",
			"Failed to create billing customer", http.StatusBadGateway)
	}

	if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{"stripe_customer_id": customerID}); err != nil {
		return "", apperrors.InternalError(err)
	}
	user.StripeCustomerID = &customerID
	return customerID, nil
}

func (s *BillingServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		logger.CtxWarn(ctx, "webhook signature rejected", "error", err)
		return apperrors.ErrWebhookSignature
	}

	switch event.Type {
	case billing.EventPaymentSucceeded:
		return s.applyPaymentSucceeded(ctx, event)
	case billing.EventSubscriptionDeleted:
		return s.applySubscriptionDeleted(ctx, event)
	default:
		logger.CtxInfo(ctx, "ignoring billing event", "provider_type", event.ProviderType)
		return nil
	}
}

// applyPaymentSucceeded records the subscription on the user and flips
// the account to APPROVED. Every write sets absolute values, so provider
// redeliveries converge on the same state.
func (s *BillingServiceImpl) applyPaymentSucceeded(ctx context.Context, event *billing.Event) error {
	user, err := s.resolveUser(event)
	if err != nil {
		return err
	}

	plan := planFromPrice(event.PlanID)
	err = s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"stripe_subscription_id": event.SubscriptionID,
		"subscription_plan":      plan,
		"subscription_status":    models.SubscriptionStatusActive,
		"status":                 models.UserStatusApproved,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	// A paying lawyer waiting on review goes live immediately.
	profile, err := s.profileRepo.FindByUserID(user.ID)
	if err == nil && profile.Status == models.ProfileStatusPendingReview {
		if err := s.profileRepo.UpdateFields(profile.ID, map[string]interface{}{
			"status": models.ProfileStatusApproved,
		}); err != nil {
			return apperrors.InternalError(err)
		}
	} else if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "payment succeeded applied",
		"user_id", user.ID, "subscription_id", event.SubscriptionID, "plan", plan)
	return nil
}

// applySubscriptionDeleted marks the subscription canceled. The account
// keeps its APPROVED status; losing a subscription does not unlist an
// already reviewed lawyer.
func (s *BillingServiceImpl) applySubscriptionDeleted(ctx context.Context, event *billing.Event) error {
	user, err := s.resolveUser(event)
	if err != nil {
		return err
	}

	err = s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"subscription_status": models.SubscriptionStatusCanceled,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "subscription canceled",
		"user_id", user.ID, "subscription_id", event.SubscriptionID)
	return nil
}

// resolveUser prefers the user_id metadata stamped on the subscription at
// checkout time; the customer ID is the fallback for events missing it.
func (s *BillingServiceImpl) resolveUser(event *billing.Event) (*models.User, error) {
	if event.UserID != "" {
		user, err := s.userRepo.FindByID(event.UserID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}

	if event.CustomerID != "" {
		user, err := s.userRepo.FindByStripeCustomerID(event.CustomerID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}

	return nil, apperrors.ErrNoBillingAccount
}

func planFromPrice(priceID string) string {
	cfg := config.GetConfig()
	switch priceID {
	case cfg.Stripe.PriceYearly:
		return "yearly"
	case cfg.Stripe.PriceMonthly:
		return "monthly"
	default:
		return priceID
	}
}
