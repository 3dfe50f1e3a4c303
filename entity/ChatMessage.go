package entity

import (
	"gorm.io/gorm"
)

// ChatMessage belongs to exactly one thread: either a complaint or a
// service request, never both. Threads are append-only.
type ChatMessage struct {
	gorm.Model
	Message string `gorm:"not null" json:"message"`

	ComplaintID      *uint `json:"complaint_id"`
	ServiceRequestID *uint `json:"service_request_id"`

	SenderID uint `gorm:"not null" json:"sender_id"`
	Sender   User `gorm:"foreignKey:SenderID" json:"-"`
}
