package entity

import (
	"gorm.io/gorm"
)

// Status only ever advances pending → reviewed → resolved.
const (
	ComplaintPending  = "pending"
	ComplaintReviewed = "reviewed"
	ComplaintResolved = "resolved"
)

type Complaint struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Status      string `gorm:"not null;default:pending" json:"status"`

	// set on the transition to reviewed; later replies overwrite it
	AdminResponse *string `json:"admin_response"`

	UserID uint `gorm:"not null" json:"user_id"`
	User   User `json:"-"`

	// nil when the complaint does not target a specific provider
	ProviderID *uint `json:"provider_id"`
	Provider   *User `gorm:"foreignKey:ProviderID" json:"-"`

	ServiceRequestID *uint           `json:"service_request_id"`
	ServiceRequest   *ServiceRequest `json:"-"`

	// owned by the complaint, removed with it
	Warnings []Warning     `gorm:"foreignKey:ComplaintID" json:"-"`
	Messages []ChatMessage `gorm:"foreignKey:ComplaintID" json:"-"`
}
