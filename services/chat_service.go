package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/entity"
	"github.com/Akib-17/CSE471-Sheba/pkg/apperr"
	"github.com/Akib-17/CSE471-Sheba/repository"
)

// ThreadRef names one message thread: a complaint or a service
// request, never both.
type ThreadRef struct {
	ComplaintID      *uint
	ServiceRequestID *uint
}

func (ref ThreadRef) valid() bool {
	return (ref.ComplaintID != nil) != (ref.ServiceRequestID != nil)
}

type ChatService struct {
	DB         *gorm.DB
	Repo       *repository.ChatRepository
	Complaints *repository.ComplaintRepository
	Requests   *repository.ServiceRequestRepository
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{
		DB:         db,
		Repo:       repository.NewChatRepository(db),
		Complaints: repository.NewComplaintRepository(db),
		Requests:   repository.NewServiceRequestRepository(db),
	}
}

// authorize enforces the participant predicate. Complaint threads admit
// the complainant, the targeted provider and any admin; request threads
// only the requester and the assigned provider.
func (s *ChatService) authorize(caller Identity, ref ThreadRef) error {
	if err := requireRole(caller, entity.RoleUser, entity.RoleProvider, entity.RoleAdmin); err != nil {
		return err
	}
	if !ref.valid() {
		return apperr.New(apperr.Validation, "exactly one of complaint or service request must be given")
	}

	if ref.ComplaintID != nil {
		c, err := s.Complaints.FindByID(s.DB, *ref.ComplaintID)
		if err != nil {
			return storeErr(err, "complaint not found")
		}
		if caller.Role == entity.RoleAdmin ||
			c.UserID == caller.UserID ||
			(c.ProviderID != nil && *c.ProviderID == caller.UserID) {
			return nil
		}
		return apperr.New(apperr.Authorization, "not a participant of this thread")
	}

	sr, err := s.Requests.FindByID(*ref.ServiceRequestID)
	if err != nil {
		return storeErr(err, "service request not found")
	}
	if sr.UserID == caller.UserID ||
		(sr.ProviderID != nil && *sr.ProviderID == caller.UserID) {
		return nil
	}
	return apperr.New(apperr.Authorization, "not a participant of this thread")
}

func (s *ChatService) Post(caller Identity, ref ThreadRef, text string) (*entity.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.New(apperr.Validation, "message is required")
	}
	if err := s.authorize(caller, ref); err != nil {
		return nil, err
	}

	msg := &entity.ChatMessage{
		Message:          text,
		ComplaintID:      ref.ComplaintID,
		ServiceRequestID: ref.ServiceRequestID,
		SenderID:         caller.UserID,
	}
	if err := s.Repo.CreateMessage(msg); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "database error", err)
	}
	return msg, nil
}

// List returns the thread in insertion order. afterID is a forward
// cursor for clients that poll.
func (s *ChatService) List(caller Identity, ref ThreadRef, afterID uint, limit int) ([]repository.MessageView, error) {
	if err := s.authorize(caller, ref); err != nil {
		return nil, err
	}
	out, err := s.Repo.ListThread(ref.ComplaintID, ref.ServiceRequestID, afterID, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "database error", err)
	}
	return out, nil
}
