package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/entity"
)

type WarningRepository struct {
	DB *gorm.DB
}

func NewWarningRepository(db *gorm.DB) *WarningRepository {
	return &WarningRepository{DB: db}
}

type WarningView struct {
	ID             uint      `json:"id"`
	ComplaintID    uint      `json:"complaint_id"`
	ComplaintTitle string    `json:"complaint_title"`
	ProviderID     uint      `json:"provider_id"`
	ProviderName   string    `json:"provider_username"`
	AdminID        uint      `json:"admin_id"`
	AdminName      string    `json:"admin_username"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

const warningViewSelect = `warnings.id, warnings.complaint_id, c.title AS complaint_title,
warnings.provider_id, p.username AS provider_name, warnings.admin_id,
a.username AS admin_name, warnings.message, warnings.created_at`

func (r *WarningRepository) viewQuery() *gorm.DB {
	return r.DB.Model(&entity.Warning{}).
		Select(warningViewSelect).
		Joins("LEFT JOIN complaints c ON c.id = warnings.complaint_id").
		Joins("LEFT JOIN users p ON p.id = warnings.provider_id").
		Joins("LEFT JOIN users a ON a.id = warnings.admin_id")
}

func (r *WarningRepository) Create(tx *gorm.DB, w *entity.Warning) error {
	return tx.Create(w).Error
}

func (r *WarningRepository) ListForProvider(providerID uint) ([]WarningView, error) {
	var out []WarningView
	err := r.viewQuery().Where("warnings.provider_id = ?", providerID).
		Order("warnings.id DESC").Scan(&out).Error
	return out, err
}

func (r *WarningRepository) ListAll() ([]WarningView, error) {
	var out []WarningView
	err := r.viewQuery().Order("warnings.id DESC").Scan(&out).Error
	return out, err
}
