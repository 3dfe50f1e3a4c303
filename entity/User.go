package entity

import (
	"gorm.io/gorm"
)

const (
	RoleUser     = "user"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `json:"-"`
	Role     string `gorm:"not null;default:user" json:"role"`
	Name     string `json:"name"`
	Location string `json:"location"`

	// Provider-only fields
	PartnerCategory  string  `json:"partner_category,omitempty"`
	ProviderUniqueID *string `gorm:"uniqueIndex" json:"provider_unique_id,omitempty"`

	// Rating aggregate, folded in when a completed request is rated
	RatingAverage float64 `json:"rating_average"`
	RatingCount   int     `json:"rating_count"`

	// Relations — preload only when needed
	ServiceRequests  []ServiceRequest `gorm:"foreignKey:UserID" json:"-"`
	AssignedRequests []ServiceRequest `gorm:"foreignKey:ProviderID" json:"-"`
	Complaints       []Complaint      `gorm:"foreignKey:UserID" json:"-"`
	Notifications    []Notification   `gorm:"foreignKey:RecipientID" json:"-"`
}
