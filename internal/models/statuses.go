package models

type UserRole string
type UserStatus string
type ProfileStatus string
type SubscriptionStatus string
type UploadPurpose string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleLawyer UserRole = "LAWYER"
	UserRoleClient UserRole = "CLIENT"

	UserStatusPending  UserStatus = "PENDING"
	UserStatusApproved UserStatus = "APPROVED"
	UserStatusRejected UserStatus = "REJECTED"

	ProfileStatusIncomplete    ProfileStatus = "INCOMPLETE"
	ProfileStatusPendingReview ProfileStatus = "PENDING_REVIEW"
	ProfileStatusApproved      ProfileStatus = "APPROVED"
	ProfileStatusRejected      ProfileStatus = "REJECTED"

	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"

	UploadPurposeHeadshot     UploadPurpose = "headshot"
	UploadPurposeCV           UploadPurpose = "cv"
	UploadPurposeVerification UploadPurpose = "verification"
)
