package services

import (
	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/entity"
	"github.com/Akib-17/CSE471-Sheba/pkg/apperr"
	"github.com/Akib-17/CSE471-Sheba/repository"
)

type NotificationService struct {
	Repo *repository.NotificationRepository
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{Repo: repository.NewNotificationRepository(db)}
}

func (s *NotificationService) List(caller Identity) ([]entity.Notification, error) {
	if err := requireRole(caller, entity.RoleUser, entity.RoleProvider, entity.RoleAdmin); err != nil {
		return nil, err
	}
	out, err := s.Repo.ListForRecipient(caller.UserID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "database error", err)
	}
	return out, nil
}

// MarkRead flips the flag on the caller's own notification only.
func (s *NotificationService) MarkRead(caller Identity, notificationID uint) (*entity.Notification, error) {
	if err := requireRole(caller, entity.RoleUser, entity.RoleProvider, entity.RoleAdmin); err != nil {
		return nil, err
	}
	n, err := s.Repo.FindByID(notificationID)
	if err != nil {
		return nil, storeErr(err, "notification not found")
	}
	if n.RecipientID != caller.UserID {
		return nil, apperr.New(apperr.Authorization, "forbidden")
	}
	if _, err := s.Repo.MarkRead(notificationID, caller.UserID); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "database error", err)
	}
	n.IsRead = true
	return n, nil
}
