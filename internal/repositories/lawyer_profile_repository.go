package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"lexhub_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("lawyer profile not found")
	ErrProfileAlreadyExists = errors.New("lawyer profile already exists for this user")
)

// DirectorySearchCriteria filters the public directory. Only approved
// profiles of approved users are ever returned.
type DirectorySearchCriteria struct {
	Query         string `form:"q"`
	Location      string `form:"location"`
	PracticeArea  string `form:"practice_area"`
	MinExperience *int   `form:"min_experience"`
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
	SortBy        string `form:"sort_by"` // "recent" (default) or "experience"
}

type LawyerProfileRepository interface {
	Create(profile *models.LawyerProfile) error
	FindByID(id string) (*models.LawyerProfile, error)
	FindByUserID(userID string) (*models.LawyerProfile, error)
	UpdateFields(profileID string, fields map[string]interface{}) error
	IncrementViews(profileID string) error
	SearchDirectory(criteria DirectorySearchCriteria) ([]models.LawyerProfile, int64, error)
	CountByStatus() (map[string]int64, error)
	FindPendingReview(page, pageSize int) ([]models.LawyerProfile, int64, error)

	// SaveReviewDecision writes the review outcome on the profile and
	// synchronizes the parent user's status in one transaction.
	SaveReviewDecision(profile *models.LawyerProfile, userStatus models.UserStatus) error
}

type LawyerProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewLawyerProfileRepository(db *gorm.DB) LawyerProfileRepository {
	return &LawyerProfileRepositoryImpl{db: db}
}

func (r *LawyerProfileRepositoryImpl) Create(profile *models.LawyerProfile) error {
	var existing models.LawyerProfile
	if err := r.db.Where("user_id = ?", profile.UserID).First(&existing).Error; err == nil {
		return ErrProfileAlreadyExists
	}

	return r.db.Create(profile).Error
}

func (r *LawyerProfileRepositoryImpl) FindByID(id string) (*models.LawyerProfile, error) {
	var profile models.LawyerProfile
	err := r.db.Preload("User").First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *LawyerProfileRepositoryImpl) FindByUserID(userID string) (*models.LawyerProfile, error) {
	var profile models.LawyerProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *LawyerProfileRepositoryImpl) UpdateFields(profileID string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	result := r.db.Model(&models.LawyerProfile{}).Where("id = ?", profileID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *LawyerProfileRepositoryImpl) IncrementViews(profileID string) error {
	return r.db.Model(&models.LawyerProfile{}).Where("id = ?", profileID).
		Update("profile_views", gorm.Expr("profile_views + ?", 1)).Error
}

func (r *LawyerProfileRepositoryImpl) SearchDirectory(criteria DirectorySearchCriteria) ([]models.LawyerProfile, int64, error) {
	var profiles []models.LawyerProfile

	// Eligibility gate: both the profile and its user must be approved.
	query := r.db.Model(&models.LawyerProfile{}).
		Joins("JOIN users ON users.id = lawyer_profiles.user_id").
		Where("lawyer_profiles.status = ?", models.ProfileStatusApproved).
		Where("users.status = ?", models.UserStatusApproved)

	if criteria.Query != "" {
		search := "%" + criteria.Query + "%"
		// practice areas are stored as lowercase slugs, so jsonb containment
		// needs the query term lowered to stay case-insensitive
		areaJSON, _ := json.Marshal([]string{strings.ToLower(criteria.Query)})
		query = query.Where(
			"lawyer_profiles.legal_name ILIKE ? OR users.name ILIKE ? OR lawyer_profiles.practice_areas::jsonb @> ?",
			search, search, datatypes.JSON(areaJSON),
		)
	}

	if criteria.Location != "" {
		location := "%" + criteria.Location + "%"
		query = query.Where(
			"lawyer_profiles.city ILIKE ? OR lawyer_profiles.country ILIKE ?",
			location, location,
		)
	}

	if criteria.PracticeArea != "" {
		areaJSON, _ := json.Marshal([]string{strings.ToLower(criteria.PracticeArea)})
		query = query.Where("lawyer_profiles.practice_areas::jsonb @> ?", datatypes.JSON(areaJSON))
	}

	if criteria.MinExperience != nil {
		query = query.Where("lawyer_profiles.years_experience >= ?", *criteria.MinExperience)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := "lawyer_profiles.created_at DESC"
	if criteria.SortBy == "experience" {
		sortField = "lawyer_profiles.years_experience DESC"
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	limit := criteria.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	err := query.Preload("User").
		Order(sortField).
		Limit(limit).Offset((page - 1) * limit).
		Find(&profiles).Error

	return profiles, total, err
}

func (r *LawyerProfileRepositoryImpl) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	err := r.db.Model(&models.LawyerProfile{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

func (r *LawyerProfileRepositoryImpl) FindPendingReview(page, pageSize int) ([]models.LawyerProfile, int64, error) {
	var profiles []models.LawyerProfile

	query := r.db.Model(&models.LawyerProfile{}).
		Where("status = ?", models.ProfileStatusPendingReview)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	err := query.Preload("User").
		Order("updated_at ASC"). // oldest submissions first
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&profiles).Error

	return profiles, total, err
}

func (r *LawyerProfileRepositoryImpl) SaveReviewDecision(profile *models.LawyerProfile, userStatus models.UserStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.LawyerProfile{}).
			Where("id = ?", profile.ID).
			Updates(map[string]interface{}{
				"status":           profile.Status,
				"rejection_reason": profile.RejectionReason,
				"reviewed_by":      profile.ReviewedBy,
				"reviewed_at":      profile.ReviewedAt,
				"updated_at":       time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProfileNotFound
		}

		result = tx.Model(&models.User{}).
			Where("id = ?", profile.UserID).
			Update("status", userStatus)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("review decision for profile %s: %w", profile.ID, ErrUserNotFound)
		}
		return nil
	})
}
