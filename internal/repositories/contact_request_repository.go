package repositories

import (
	"errors"

	"lexhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrContactRequestNotFound = errors.New("contact request not found")

type ContactRequestRepository interface {
	Create(request *models.ContactRequest) error
	FindByLawyer(lawyerID string, page, pageSize int) ([]models.ContactRequest, int64, error)
	MarkRead(id, lawyerID string) error
}

type ContactRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewContactRequestRepository(db *gorm.DB) ContactRequestRepository {
	return &ContactRequestRepositoryImpl{db: db}
}

func (r *ContactRequestRepositoryImpl) Create(request *models.ContactRequest) error {
	return r.db.Create(request).Error
}

func (r *ContactRequestRepositoryImpl) FindByLawyer(lawyerID string, page, pageSize int) ([]models.ContactRequest, int64, error) {
	var requests []models.ContactRequest

	query := r.db.Model(&models.ContactRequest{}).Where("lawyer_id = ?", lawyerID)

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

	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&requests).Error

	return requests, total, err
}

func (r *ContactRequestRepositoryImpl) MarkRead(id, lawyerID string) error {
	result := r.db.Model(&models.ContactRequest{}).
		Where("id = ? AND lawyer_id = ?", id, lawyerID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactRequestNotFound
	}
	return nil
}
