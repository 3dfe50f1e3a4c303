package repository

import (
	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/entity"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) FindByID(id uint) (*entity.Notification, error) {
	var n entity.Notification
	if err := r.DB.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) ListForRecipient(recipientID uint) ([]entity.Notification, error) {
	var out []entity.Notification
	err := r.DB.Where("recipient_id = ?", recipientID).Order("id DESC").Find(&out).Error
	return out, err
}

// MarkRead flips is_read for the recipient's own row only.
func (r *NotificationRepository) MarkRead(notificationID, recipientID uint) (int64, error) {
	res := r.DB.Model(&entity.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
