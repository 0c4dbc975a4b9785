package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"

	"lexhub_backend/internal/billing"
	"lexhub_backend/internal/models"
	"lexhub_backend/internal/repositories"
)

// In-memory fakes for the repository interfaces. They apply the same
// field maps the gorm implementations would, which is enough for the
// service-level behavior under test.

type fakeUserRepo struct {
	users map[string]*models.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	r.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByGoogleSub(sub string) (*models.User, error) {
	for _, u := range r.users {
		if u.GoogleSub != nil && *u.GoogleSub == sub {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByStripeCustomerID(customerID string) (*models.User, error) {
	for _, u := range r.users {
		if u.StripeCustomerID != nil && *u.StripeCustomerID == customerID {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateFields(id string, fields map[string]interface{}) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	applyUserFields(u, fields)
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindWithFilter(filter repositories.UserFilter) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range r.users {
		if filter.Role != "" && string(u.Role) != filter.Role {
			continue
		}
		if filter.Status != "" && string(u.Status) != filter.Status {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) CountByRoleAndStatus() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, u := range r.users {
		counts[string(u.Role)+":"+string(u.Status)]++
	}
	return counts, nil
}

func (r *fakeUserRepo) UpdateWithProfile(userID string, userFields, profileFields map[string]interface{}) error {
	return r.UpdateFields(userID, userFields)
}

func applyUserFields(u *models.User, fields map[string]interface{}) {
	for key, value := range fields {
		switch key {
		case "name":
			u.Name = asString(value)
		case "role":
			u.Role = models.UserRole(asString(value))
		case "status":
			u.Status = models.UserStatus(asString(value))
		case "is_active":
			u.IsActive = value.(bool)
		case "password_hash":
			v := asString(value)
			u.PasswordHash = &v
		case "google_sub":
			v := asString(value)
			u.GoogleSub = &v
		case "stripe_customer_id":
			v := asString(value)
			u.StripeCustomerID = &v
		case "stripe_subscription_id":
			v := asString(value)
			u.StripeSubscriptionID = &v
		case "subscription_plan":
			u.SubscriptionPlan = asString(value)
		case "subscription_status":
			u.SubscriptionStatus = models.SubscriptionStatus(asString(value))
		}
	}
}

type fakeProfileRepo struct {
	profiles map[string]*models.LawyerProfile
	users    *fakeUserRepo
	seq      int
}

func newFakeProfileRepo(users *fakeUserRepo) *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*models.LawyerProfile{}, users: users}
}

func (r *fakeProfileRepo) Create(profile *models.LawyerProfile) error {
	for _, p := range r.profiles {
		if p.UserID == profile.UserID {
			return repositories.ErrProfileAlreadyExists
		}
	}
	r.seq++
	if profile.ID == "" {
		profile.ID = fmt.Sprintf("profile-%d", r.seq)
	}
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) FindByID(id string) (*models.LawyerProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	if r.users != nil {
		if u, err := r.users.FindByID(p.UserID); err == nil {
			p.User = u
		}
	}
	return p, nil
}

func (r *fakeProfileRepo) FindByUserID(userID string) (*models.LawyerProfile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, repositories.ErrProfileNotFound
}

func (r *fakeProfileRepo) UpdateFields(profileID string, fields map[string]interface{}) error {
	p, ok := r.profiles[profileID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	for key, value := range fields {
		switch key {
		case "status":
			p.Status = models.ProfileStatus(asString(value))
		case "completion_percentage":
			p.CompletionPercentage = value.(int)
		case "completed_steps":
			p.CompletedSteps = value.(datatypes.JSON)
		case "rejection_reason":
			p.RejectionReason = asString(value)
		case "legal_name":
			p.LegalName = asString(value)
		case "title":
			p.Title = asString(value)
		case "registration_number":
			p.RegistrationNumber = asString(value)
		case "firm_name":
			p.FirmName = asString(value)
		case "address":
			p.Address = asString(value)
		case "city":
			p.City = asString(value)
		case "country":
			p.Country = asString(value)
		case "phone":
			p.Phone = asString(value)
		}
	}
	return nil
}

func (r *fakeProfileRepo) IncrementViews(profileID string) error {
	p, ok := r.profiles[profileID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.ProfileViews++
	return nil
}

// SearchDirectory applies the same predicates as the SQL implementation:
// ILIKE legs are case-insensitive substring matches, practice-area
// containment compares against the stored lowercase slugs.
func (r *fakeProfileRepo) SearchDirectory(criteria repositories.DirectorySearchCriteria) ([]models.LawyerProfile, int64, error) {
	var out []models.LawyerProfile
	for _, p := range r.profiles {
		if p.Status != models.ProfileStatusApproved {
			continue
		}
		u, err := r.users.FindByID(p.UserID)
		if err != nil || u.Status != models.UserStatusApproved {
			continue
		}
		if criteria.Query != "" {
			q := strings.ToLower(criteria.Query)
			if !strings.Contains(strings.ToLower(p.LegalName), q) &&
				!strings.Contains(strings.ToLower(u.Name), q) &&
				!containsArea(p.GetPracticeAreas(), q) {
				continue
			}
		}
		if criteria.Location != "" {
			loc := strings.ToLower(criteria.Location)
			if !strings.Contains(strings.ToLower(p.City), loc) &&
				!strings.Contains(strings.ToLower(p.Country), loc) {
				continue
			}
		}
		if criteria.PracticeArea != "" {
			if !containsArea(p.GetPracticeAreas(), strings.ToLower(criteria.PracticeArea)) {
				continue
			}
		}
		if criteria.MinExperience != nil && p.YearsExperience < *criteria.MinExperience {
			continue
		}
		entry := *p
		entry.User = u
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if criteria.SortBy == "experience" {
			return out[i].YearsExperience > out[j].YearsExperience
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, int64(len(out)), nil
}

func containsArea(areas []string, slug string) bool {
	for _, a := range areas {
		if a == slug {
			return true
		}
	}
	return false
}

func (r *fakeProfileRepo) CountByStatus() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, p := range r.profiles {
		counts[string(p.Status)]++
	}
	return counts, nil
}

func (r *fakeProfileRepo) FindPendingReview(page, pageSize int) ([]models.LawyerProfile, int64, error) {
	var out []models.LawyerProfile
	for _, p := range r.profiles {
		if p.Status == models.ProfileStatusPendingReview {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProfileRepo) SaveReviewDecision(profile *models.LawyerProfile, userStatus models.UserStatus) error {
	stored, ok := r.profiles[profile.ID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	stored.Status = profile.Status
	stored.RejectionReason = profile.RejectionReason
	stored.ReviewedBy = profile.ReviewedBy
	stored.ReviewedAt = profile.ReviewedAt

	u, err := r.users.FindByID(stored.UserID)
	if err != nil {
		return err
	}
	u.Status = userStatus
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*models.RefreshToken{}}
}

func (r *fakeTokenRepo) Create(token *models.RefreshToken) error {
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeTokenRepo) FindByToken(token string) (*models.RefreshToken, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, repositories.ErrRefreshTokenNotFound
	}
	return t, nil
}

func (r *fakeTokenRepo) DeleteByToken(token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeTokenRepo) DeleteByUserID(userID string) error {
	for key, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, key)
		}
	}
	return nil
}

type fakeContactRepo struct {
	requests []*models.ContactRequest
	seq      int
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{}
}

func (r *fakeContactRepo) Create(request *models.ContactRequest) error {
	r.seq++
	request.ID = fmt.Sprintf("contact-%d", r.seq)
	r.requests = append(r.requests, request)
	return nil
}

func (r *fakeContactRepo) FindByLawyer(lawyerID string, page, pageSize int) ([]models.ContactRequest, int64, error) {
	var out []models.ContactRequest
	for _, cr := range r.requests {
		if cr.LawyerID == lawyerID {
			out = append(out, *cr)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeContactRepo) MarkRead(id, lawyerID string) error {
	for _, cr := range r.requests {
		if cr.ID == id && cr.LawyerID == lawyerID {
			cr.IsRead = true
			return nil
		}
	}
	return repositories.ErrContactRequestNotFound
}

// fakeProvider is a scriptable billing.Provider.
type fakeProvider struct {
	event       *billing.Event
	parseErr    error
	checkoutURL string
	customerID  string
	calls       []string
}

func (p *fakeProvider) EnsureCustomer(ctx context.Context, userID, email, name string) (string, error) {
	p.calls = append(p.calls, "EnsureCustomer")
	if p.customerID == "" {
		p.customerID = "cus_test"
	}
	return p.customerID, nil
}

func (p *fakeProvider) CreateCheckoutSession(ctx context.Context, customerID, userID, priceID string) (string, error) {
	p.calls = append(p.calls, "CreateCheckoutSession:"+priceID)
	if p.checkoutURL == "" {
		return "https://checkout.test/session", nil
	}
	return p.checkoutURL, nil
}

func (p *fakeProvider) ParseWebhook(payload []byte, signature string) (*billing.Event, error) {
	p.calls = append(p.calls, "ParseWebhook")
	if p.parseErr != nil {
		return nil, p.parseErr
	}
	return p.event, nil
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case models.UserRole:
		return string(s)
	case models.UserStatus:
		return string(s)
	case models.ProfileStatus:
		return string(s)
	case models.SubscriptionStatus:
		return string(s)
	default:
		return fmt.Sprintf("%v", v)
	}
}
