package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexhub_backend/internal/models"
	"lexhub_backend/internal/services/dto"
)

func newDirectoryFixture(t *testing.T) (DirectoryService, *fakeUserRepo, *fakeProfileRepo, *fakeContactRepo) {
	t.Helper()
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo(users)
	contacts := newFakeContactRepo()
	return NewDirectoryService(profiles, contacts), users, profiles, contacts
}

func addLawyer(t *testing.T, users *fakeUserRepo, profiles *fakeProfileRepo,
	userStatus models.UserStatus, profileStatus models.ProfileStatus) *models.LawyerProfile {
	t.Helper()

	user := &models.User{
		Name:     "Jane Advocate",
		Email:    fmt.Sprintf("lawyer-%d@example.com", len(users.users)+1),
		Role:     models.UserRoleLawyer,
		Status:   userStatus,
		IsActive: true,
	}
	require.NoError(t, users.Create(user))

	profile := fullProfile()
	profile.UserID = user.ID
	profile.Status = profileStatus
	require.NoError(t, profiles.Create(profile))
	return profile
}

func TestSearch_OnlyFullyApprovedListed(t *testing.T) {
	svc, users, profiles, _ := newDirectoryFixture(t)

	listed := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)
	addLawyer(t, users, profiles, models.UserStatusPending, models.ProfileStatusApproved)
	addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusPendingReview)

	page, err := svc.Search(context.Background(), dto.DirectorySearchRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), page.Total)
	entries, ok := page.Items.([]*dto.DirectoryEntry)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, listed.ID, entries[0].ProfileID)
	assert.Equal(t, "Jane Advocate", entries[0].Name)
}

func TestSearch_FreeTextMatchesPracticeAreaCaseInsensitive(t *testing.T) {
	svc, users, profiles, _ := newDirectoryFixture(t)

	family := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)
	tax := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)
	tax.SetPracticeAreas([]string{"tax-law"})

	// Practice areas are stored as lowercase slugs; a mixed-case query
	// still matches on the practice-area leg.
	page, err := svc.Search(context.Background(), dto.DirectorySearchRequest{Query: "Family-Law"})
	require.NoError(t, err)

	entries, ok := page.Items.([]*dto.DirectoryEntry)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, family.ID, entries[0].ProfileID)
	assert.NotEqual(t, tax.ID, entries[0].ProfileID)
}

func TestSearch_FreeTextMatchesName(t *testing.T) {
	svc, users, profiles, _ := newDirectoryFixture(t)

	match := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)
	other := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)
	other.LegalName = "Max Counsel"
	users.users[other.UserID].Name = "Max Counsel"

	page, err := svc.Search(context.Background(), dto.DirectorySearchRequest{Query: "advocate"})
	require.NoError(t, err)

	entries := page.Items.([]*dto.DirectoryEntry)
	require.Len(t, entries, 1)
	assert.Equal(t, match.ID, entries[0].ProfileID)
}

func TestSearch_PracticeAreaFilterExactMembership(t *testing.T) {
	svc, users, profiles, _ := newDirectoryFixture(t)

	family := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)
	tax := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)
	tax.SetPracticeAreas([]string{"tax-law"})

	page, err := svc.Search(context.Background(), dto.DirectorySearchRequest{PracticeArea: "inheritance-law"})
	require.NoError(t, err)

	entries := page.Items.([]*dto.DirectoryEntry)
	require.Len(t, entries, 1)
	assert.Equal(t, family.ID, entries[0].ProfileID)

	// "law" alone is not a member of any practice-area list.
	page, err = svc.Search(context.Background(), dto.DirectorySearchRequest{PracticeArea: "law"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
}

func TestSearch_MinExperienceBoundary(t *testing.T) {
	svc, users, profiles, _ := newDirectoryFixture(t)

	senior := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)
	junior := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)
	junior.YearsExperience = 5

	min := senior.YearsExperience
	page, err := svc.Search(context.Background(), dto.DirectorySearchRequest{MinExperience: &min})
	require.NoError(t, err)

	// The threshold is inclusive.
	entries := page.Items.([]*dto.DirectoryEntry)
	require.Len(t, entries, 1)
	assert.Equal(t, senior.ID, entries[0].ProfileID)

	above := senior.YearsExperience + 1
	page, err = svc.Search(context.Background(), dto.DirectorySearchRequest{MinExperience: &above})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
}

func TestSearch_SortByExperience(t *testing.T) {
	svc, users, profiles, _ := newDirectoryFixture(t)

	junior := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)
	junior.YearsExperience = 3
	senior := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)
	senior.YearsExperience = 25

	page, err := svc.Search(context.Background(), dto.DirectorySearchRequest{SortBy: "experience"})
	require.NoError(t, err)

	entries := page.Items.([]*dto.DirectoryEntry)
	require.Len(t, entries, 2)
	assert.Equal(t, senior.ID, entries[0].ProfileID)
	assert.Equal(t, junior.ID, entries[1].ProfileID)
}

func TestSearch_LocationSubstring(t *testing.T) {
	svc, users, profiles, _ := newDirectoryFixture(t)

	berlin := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)
	paris := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)
	paris.City = "Paris"
	paris.Country = "France"

	page, err := svc.Search(context.Background(), dto.DirectorySearchRequest{Location: "berl"})
	require.NoError(t, err)

	entries := page.Items.([]*dto.DirectoryEntry)
	require.Len(t, entries, 1)
	assert.Equal(t, berlin.ID, entries[0].ProfileID)
}

func TestGetPublicProfile_CountsView(t *testing.T) {
	svc, users, profiles, _ := newDirectoryFixture(t)
	profile := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)

	entry, err := svc.GetPublicProfile(context.Background(), profile.ID)
	require.NoError(t, err)

	assert.Equal(t, profile.ID, entry.ProfileID)
	assert.Equal(t, 1, profiles.profiles[profile.ID].ProfileViews)
}

func TestGetPublicProfile_HiddenWhenNotApproved(t *testing.T) {
	svc, users, profiles, _ := newDirectoryFixture(t)
	profile := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusRejected)

	_, err := svc.GetPublicProfile(context.Background(), profile.ID)
	assert.Error(t, err)
}

func TestContactLawyer_StoresRequest(t *testing.T) {
	svc, users, profiles, contacts := newDirectoryFixture(t)
	profile := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)

	err := svc.ContactLawyer(context.Background(), profile.ID, nil, dto.ContactLawyerRequest{
		SenderName:  "Curious Client",
		SenderEmail: "client@example.com",
		Subject:     "Custody question",
		Message:     "I need advice on a custody arrangement.",
	})
	require.NoError(t, err)

	require.Len(t, contacts.requests, 1)
	assert.Equal(t, profile.ID, contacts.requests[0].LawyerID)
	assert.False(t, contacts.requests[0].IsRead)
}

func TestMarkContactRead_ScopedToOwnInbox(t *testing.T) {
	svc, users, profiles, contacts := newDirectoryFixture(t)
	profile := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)
	other := addLawyer(t, users, profiles, models.UserStatusApproved, models.ProfileStatusApproved)

	require.NoError(t, svc.ContactLawyer(context.Background(), profile.ID, nil, dto.ContactLawyerRequest{
		SenderName:  "Curious Client",
		SenderEmail: "client@example.com",
		Subject:     "Hello",
		Message:     "A sufficiently long message body.",
	}))
	requestID := contacts.requests[0].ID

	// Another lawyer cannot mark someone else's request.
	err := svc.MarkContactRead(context.Background(), other.UserID, requestID)
	assert.Error(t, err)

	require.NoError(t, svc.MarkContactRead(context.Background(), profile.UserID, requestID))
	assert.True(t, contacts.requests[0].IsRead)
}
