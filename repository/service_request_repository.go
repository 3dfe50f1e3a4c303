package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/entity"
)

type ServiceRequestRepository struct {
	DB *gorm.DB
}

func NewServiceRequestRepository(db *gorm.DB) *ServiceRequestRepository {
	return &ServiceRequestRepository{DB: db}
}

func (r *ServiceRequestRepository) Create(tx *gorm.DB, sr *entity.ServiceRequest) error {
	return tx.Create(sr).Error
}

func (r *ServiceRequestRepository) FindByID(id uint) (*entity.ServiceRequest, error) {
	var sr entity.ServiceRequest
	if err := r.DB.First(&sr, id).Error; err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *ServiceRequestRepository) ListForUser(userID uint) ([]entity.ServiceRequest, error) {
	var out []entity.ServiceRequest
	err := r.DB.Where("user_id = ?", userID).Order("id DESC").Find(&out).Error
	return out, err
}

func (r *ServiceRequestRepository) ListForProvider(providerID uint) ([]entity.ServiceRequest, error) {
	var out []entity.ServiceRequest
	err := r.DB.Where("provider_id = ?", providerID).Order("id DESC").Find(&out).Error
	return out, err
}

// ListPending is the open pool providers pick work from.
func (r *ServiceRequestRepository) ListPending() ([]entity.ServiceRequest, error) {
	var out []entity.ServiceRequest
	err := r.DB.Where("status = ? AND provider_id IS NULL", entity.RequestPending).
		Order("id DESC").Find(&out).Error
	return out, err
}

func (r *ServiceRequestRepository) ListAll() ([]entity.ServiceRequest, error) {
	var out []entity.ServiceRequest
	err := r.DB.Order("id DESC").Find(&out).Error
	return out, err
}

// AcceptGuard claims a pending, unassigned request for the provider.
// Returns rows affected: 0 means the request was already taken or has
// moved on.
func (r *ServiceRequestRepository) AcceptGuard(tx *gorm.DB, requestID, providerID uint) (int64, error) {
	res := tx.Model(&entity.ServiceRequest{}).
		Where("id = ? AND status = ? AND provider_id IS NULL", requestID, entity.RequestPending).
		Updates(map[string]any{
			"status":      entity.RequestAccepted,
			"provider_id": providerID,
		})
	return res.RowsAffected, res.Error
}

// UpdateStatusGuard moves status from → to, failing closed on any
// concurrent transition.
func (r *ServiceRequestRepository) UpdateStatusGuard(tx *gorm.DB, requestID uint, from, to string) (int64, error) {
	updates := map[string]any{"status": to}
	if to == entity.RequestCompleted {
		now := time.Now()
		updates["completed_at"] = &now
	}
	res := tx.Model(&entity.ServiceRequest{}).
		Where("id = ? AND status = ?", requestID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// SetRatingGuard records the requester's rating exactly once.
func (r *ServiceRequestRepository) SetRatingGuard(tx *gorm.DB, requestID uint, rating int, review *string) (int64, error) {
	res := tx.Model(&entity.ServiceRequest{}).
		Where("id = ? AND status = ? AND rating IS NULL", requestID, entity.RequestCompleted).
		Updates(map[string]any{
			"rating": rating,
			"review": review,
		})
	return res.RowsAffected, res.Error
}
