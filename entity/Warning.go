package entity

import (
	"gorm.io/gorm"
)

// Warning is an immutable sanction record. There is no update or
// single-row delete; rows only go away when their complaint does.
type Warning struct {
	gorm.Model
	Message string `gorm:"not null" json:"message"`

	ComplaintID uint      `gorm:"not null" json:"complaint_id"`
	Complaint   Complaint `json:"-"`

	ProviderID uint `gorm:"not null" json:"provider_id"`
	Provider   User `gorm:"foreignKey:ProviderID" json:"-"`

	AdminID uint `gorm:"not null" json:"admin_id"`
	Admin   User `gorm:"foreignKey:AdminID" json:"-"`
}
