package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/entity"
)

type ComplaintRepository struct {
	DB *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{DB: db}
}

// ComplaintView is what the API returns: the row joined with the
// complainant's and target provider's public identity.
type ComplaintView struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	UserUsername     string    `json:"user_username"`
	ProviderID       *uint     `json:"provider_id"`
	ProviderUsername *string   `json:"provider_username"`
	ProviderUniqueID *string   `json:"provider_unique_id"`
	ServiceRequestID *uint     `json:"service_request_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Status           string    `json:"status"`
	AdminResponse    *string   `json:"admin_response"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

const complaintViewSelect = `complaints.id, complaints.user_id, u.username AS user_username,
complaints.provider_id, p.username AS provider_username, p.provider_unique_id,
complaints.service_request_id, complaints.title, complaints.description,
complaints.status, complaints.admin_response, complaints.created_at, complaints.updated_at`

func (r *ComplaintRepository) viewQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&entity.Complaint{}).
		Select(complaintViewSelect).
		Joins("LEFT JOIN users u ON u.id = complaints.user_id").
		Joins("LEFT JOIN users p ON p.id = complaints.provider_id")
}

func (r *ComplaintRepository) Create(tx *gorm.DB, c *entity.Complaint) error {
	return tx.Create(c).Error
}

func (r *ComplaintRepository) FindByID(tx *gorm.DB, id uint) (*entity.Complaint, error) {
	var c entity.Complaint
	if err := tx.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ComplaintRepository) GetView(id uint) (*ComplaintView, error) {
	var v ComplaintView
	err := r.viewQuery(r.DB).Where("complaints.id = ?", id).Take(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ComplaintRepository) ListViewsForUser(userID uint) ([]ComplaintView, error) {
	var out []ComplaintView
	err := r.viewQuery(r.DB).Where("complaints.user_id = ?", userID).
		Order("complaints.id DESC").Scan(&out).Error
	return out, err
}

func (r *ComplaintRepository) ListViewsForProvider(providerID uint) ([]ComplaintView, error) {
	var out []ComplaintView
	err := r.viewQuery(r.DB).Where("complaints.provider_id = ?", providerID).
		Order("complaints.id DESC").Scan(&out).Error
	return out, err
}

func (r *ComplaintRepository) ListViewsAll() ([]ComplaintView, error) {
	var out []ComplaintView
	err := r.viewQuery(r.DB).Order("complaints.id DESC").Scan(&out).Error
	return out, err
}

// UpdateStatusGuard moves status from → to; rows affected 0 means the
// complaint was not in `from` anymore. Transitions never go backward.
func (r *ComplaintRepository) UpdateStatusGuard(tx *gorm.DB, complaintID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Complaint{}).
		Where("id = ? AND status = ?", complaintID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// SetAdminResponse overwrites the response without touching status.
func (r *ComplaintRepository) SetAdminResponse(tx *gorm.DB, complaintID uint, response string) error {
	return tx.Model(&entity.Complaint{}).
		Where("id = ?", complaintID).
		Update("admin_response", response).Error
}

// DeleteCascade removes the complaint together with its warnings and
// chat messages so no orphan audit rows survive.
func (r *ComplaintRepository) DeleteCascade(tx *gorm.DB, complaintID uint) error {
	if err := tx.Where("complaint_id = ?", complaintID).Delete(&entity.ChatMessage{}).Error; err != nil {
		return err
	}
	if err := tx.Where("complaint_id = ?", complaintID).Delete(&entity.Warning{}).Error; err != nil {
		return err
	}
	return tx.Delete(&entity.Complaint{}, complaintID).Error
}
