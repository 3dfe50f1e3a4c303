package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/entity"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

type MessageView struct {
	ID               uint      `json:"id"`
	ComplaintID      *uint     `json:"complaint_id"`
	ServiceRequestID *uint     `json:"service_request_id"`
	SenderID         uint      `json:"sender_id"`
	SenderUsername   string    `json:"sender_username"`
	SenderRole       string    `json:"sender_role"`
	Message          string    `json:"message"`
	CreatedAt        time.Time `json:"created_at"`
}

const messageViewSelect = `chat_messages.id, chat_messages.complaint_id,
chat_messages.service_request_id, chat_messages.sender_id,
s.username AS sender_username, s.role AS sender_role,
chat_messages.message, chat_messages.created_at`

func (r *ChatRepository) CreateMessage(msg *entity.ChatMessage) error {
	return r.DB.Create(msg).Error
}

// ListThread returns one thread in insertion order. afterID is a
// forward cursor (0 means from the start); limit <= 0 means no limit.
func (r *ChatRepository) ListThread(complaintID, requestID *uint, afterID uint, limit int) ([]MessageView, error) {
	q := r.DB.Model(&entity.ChatMessage{}).
		Select(messageViewSelect).
		Joins("LEFT JOIN users s ON s.id = chat_messages.sender_id")

	if complaintID != nil {
		q = q.Where("chat_messages.complaint_id = ?", *complaintID)
	} else {
		q = q.Where("chat_messages.service_request_id = ?", *requestID)
	}
	if afterID > 0 {
		q = q.Where("chat_messages.id > ?", afterID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []MessageView
	err := q.Order("chat_messages.created_at ASC, chat_messages.id ASC").Scan(&out).Error
	return out, err
}
