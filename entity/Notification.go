package entity

import (
	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model
	Message string `gorm:"not null" json:"message"`
	IsRead  bool   `gorm:"not null;default:false" json:"is_read"`

	RecipientID uint `gorm:"not null" json:"recipient_id"`
	Recipient   User `gorm:"foreignKey:RecipientID" json:"-"`
}
