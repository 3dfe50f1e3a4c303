package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	RequestPending   = "pending"
	RequestAccepted  = "accepted"
	RequestRejected  = "rejected"
	RequestCompleted = "completed"
)

type ServiceRequest struct {
	gorm.Model
	Category    string `gorm:"not null" json:"category"`
	Description string `json:"description"`
	Status      string `gorm:"not null;default:pending" json:"status"`

	UserID uint `gorm:"not null" json:"user_id"`
	User   User `json:"-"`

	// nil until a provider accepts
	ProviderID *uint `json:"provider_id"`
	Provider   *User `gorm:"foreignKey:ProviderID" json:"-"`

	// post-completion rating, set at most once by the requester
	Rating      *int       `json:"rating"`
	Review      *string    `json:"review"`
	CompletedAt *time.Time `json:"completed_at"`

	Messages []ChatMessage `gorm:"foreignKey:ServiceRequestID" json:"-"`
}
