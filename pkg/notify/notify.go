package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/entity"
)

// Notifier is the notification sink: it stores a Notification row and,
// when a Redis client is configured, fans the event out over pub/sub.
// Delivery is fire-and-forget; failures are logged, never returned, so
// a dropped notification can never fail the originating workflow call.
type Notifier struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

func New(db *gorm.DB, rdb *redis.Client) *Notifier {
	return &Notifier{DB: db, Redis: rdb, Ctx: context.Background()}
}

type event struct {
	RecipientID uint   `json:"recipient_id"`
	Message     string `json:"message"`
}

func (n *Notifier) Notify(recipientID uint, message string) {
	row := &entity.Notification{
		RecipientID: recipientID,
		Message:     message,
	}
	if err := n.DB.Create(row).Error; err != nil {
		log.Error().Err(err).Uint("recipient_id", recipientID).
			Msg("failed to store notification")
		return
	}

	if n.Redis == nil {
		return
	}
	payload, err := json.Marshal(event{RecipientID: recipientID, Message: message})
	if err != nil {
		return
	}
	if err := n.Redis.Publish(n.Ctx, "notifications", payload).Err(); err != nil {
		log.Warn().Err(err).Uint("recipient_id", recipientID).
			Msg("failed to publish notification")
	}
}
