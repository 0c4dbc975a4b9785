package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexhub_backend/internal/billing"
	"lexhub_backend/internal/config"
	"lexhub_backend/internal/models"
	"lexhub_backend/internal/services/dto"
	"lexhub_backend/pkg/apperrors"
)

func newBillingFixture(t *testing.T, provider *fakeProvider) (BillingService, *fakeUserRepo, *fakeProfileRepo, *models.User) {
	t.Helper()

	t.Setenv("STRIPE_PRICE_MONTHLY", "price_monthly_test")
	t.Setenv("STRIPE_PRICE_YEARLY", "price_yearly_test")
	config.AppConfig = nil
	t.Cleanup(func() { config.AppConfig = nil })

	users := newFakeUserRepo()
	profiles := newFakeProfileRepo(users)

	customerID := "cus_test"
	user := &models.User{
		Name:             "Jane Advocate",
		Email:            "jane@example.com",
		Role:             models.UserRoleLawyer,
		Status:           models.UserStatusPending,
		IsActive:         true,
		StripeCustomerID: &customerID,
	}
	require.NoError(t, users.Create(user))

	return NewBillingService(provider, users, profiles), users, profiles, user
}

func checkoutReq(plan string) dto.CreateCheckoutRequest {
	return dto.CreateCheckoutRequest{Plan: plan}
}

func paymentEvent(user *models.User) *billing.Event {
	return &billing.Event{
		Type:           billing.EventPaymentSucceeded,
		ProviderType:   "invoice.payment_succeeded",
		SubscriptionID: "sub_123",
		CustomerID:     "cus_test",
		PlanID:         "price_monthly_test",
		UserID:         user.ID,
	}
}

func TestHandleWebhook_PaymentSucceeded(t *testing.T) {
	provider := &fakeProvider{}
	svc, users, _, user := newBillingFixture(t, provider)
	provider.event = paymentEvent(user)

	err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	require.NoError(t, err)

	updated, err := users.FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.StripeSubscriptionID)
	assert.Equal(t, "sub_123", *updated.StripeSubscriptionID)
	assert.Equal(t, "monthly", updated.SubscriptionPlan)
	assert.Equal(t, models.SubscriptionStatusActive, updated.SubscriptionStatus)
	assert.Equal(t, models.UserStatusApproved, updated.Status)
}

func TestHandleWebhook_PaymentSucceededIsIdempotent(t *testing.T) {
	provider := &fakeProvider{}
	svc, users, _, user := newBillingFixture(t, provider)
	provider.event = paymentEvent(user)

	require.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
	first, err := users.FindByID(user.ID)
	require.NoError(t, err)
	firstState := *first

	// Providers redeliver; the second application must converge on the
	// same state.
	require.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
	second, err := users.FindByID(user.ID)
	require.NoError(t, err)

	assert.Equal(t, firstState.Status, second.Status)
	assert.Equal(t, firstState.SubscriptionPlan, second.SubscriptionPlan)
	assert.Equal(t, firstState.SubscriptionStatus, second.SubscriptionStatus)
	assert.Equal(t, *firstState.StripeSubscriptionID, *second.StripeSubscriptionID)
}

func TestHandleWebhook_PaymentPromotesPendingProfile(t *testing.T) {
	provider := &fakeProvider{}
	svc, _, profiles, user := newBillingFixture(t, provider)
	provider.event = paymentEvent(user)

	profile := fullProfile()
	profile.UserID = user.ID
	profile.Status = models.ProfileStatusPendingReview
	require.NoError(t, profiles.Create(profile))

	require.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	assert.Equal(t, models.ProfileStatusApproved, profiles.profiles[profile.ID].Status)
}

func TestHandleWebhook_SubscriptionDeletedKeepsApproval(t *testing.T) {
	provider := &fakeProvider{}
	svc, users, _, user := newBillingFixture(t, provider)

	user.Status = models.UserStatusApproved
	user.SubscriptionStatus = models.SubscriptionStatusActive

	provider.event = &billing.Event{
		Type:           billing.EventSubscriptionDeleted,
		ProviderType:   "customer.subscription.deleted",
		SubscriptionID: "sub_123",
		CustomerID:     "cus_test",
		UserID:         user.ID,
	}

	require.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	updated, err := users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCanceled, updated.SubscriptionStatus)
	// Losing the subscription does not unlist the lawyer.
	assert.Equal(t, models.UserStatusApproved, updated.Status)
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	provider := &fakeProvider{parseErr: errors.New("signature mismatch")}
	svc, users, _, user := newBillingFixture(t, provider)

	err := svc.HandleWebhook(context.Background(), []byte("{}"), "bad")
	assert.ErrorIs(t, err, apperrors.ErrWebhookSignature)

	// No mutation on a rejected event.
	updated, findErr := users.FindByID(user.ID)
	require.NoError(t, findErr)
	assert.Equal(t, models.UserStatusPending, updated.Status)
	assert.Nil(t, updated.StripeSubscriptionID)
}

func TestHandleWebhook_UnknownEventIgnored(t *testing.T) {
	provider := &fakeProvider{event: &billing.Event{
		Type:         billing.EventUnknown,
		ProviderType: "charge.refunded",
	}}
	svc, users, _, user := newBillingFixture(t, provider)

	err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	require.NoError(t, err)

	updated, findErr := users.FindByID(user.ID)
	require.NoError(t, findErr)
	assert.Equal(t, models.UserStatusPending, updated.Status)
}

func TestHandleWebhook_ResolvesUserByCustomerID(t *testing.T) {
	provider := &fakeProvider{}
	svc, users, _, user := newBillingFixture(t, provider)

	// No user_id metadata on the event; fall back to the customer ID.
	event := paymentEvent(user)
	event.UserID = ""
	provider.event = event

	require.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	updated, err := users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusApproved, updated.Status)
}

func TestCreateCheckout_SelectsPlanPrice(t *testing.T) {
	provider := &fakeProvider{}
	svc, _, _, user := newBillingFixture(t, provider)

	resp, err := svc.CreateCheckout(context.Background(), user.ID, checkoutReq("yearly"))
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.test/session", resp.URL)
	assert.Contains(t, provider.calls, "CreateCheckoutSession:price_yearly_test")
}

func TestCreateCheckout_LawyersOnly(t *testing.T) {
	provider := &fakeProvider{}
	svc, users, _, _ := newBillingFixture(t, provider)

	client := &models.User{
		Name:   "Client",
		Email:  "client@example.com",
		Role:   models.UserRoleClient,
		Status: models.UserStatusApproved,
	}
	require.NoError(t, users.Create(client))

	_, err := svc.CreateCheckout(context.Background(), client.ID, checkoutReq("monthly"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}
