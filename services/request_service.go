package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/entity"
	"github.com/Akib-17/CSE471-Sheba/pkg/apperr"
	"github.com/Akib-17/CSE471-Sheba/pkg/notify"
	"github.com/Akib-17/CSE471-Sheba/repository"
)

type ServiceRequestService struct {
	DB       *gorm.DB
	Repo     *repository.ServiceRequestRepository
	UserRepo *repository.UserRepository
	Notifier *notify.Notifier
}

func NewServiceRequestService(db *gorm.DB, notifier *notify.Notifier) *ServiceRequestService {
	return &ServiceRequestService{
		DB:       db,
		Repo:     repository.NewServiceRequestRepository(db),
		UserRepo: repository.NewUserRepository(db),
		Notifier: notifier,
	}
}

type CreateRequestInput struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (s *ServiceRequestService) Create(caller Identity, in CreateRequestInput) (*entity.ServiceRequest, error) {
	if err := requireRole(caller, entity.RoleUser); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, apperr.New(apperr.Validation, "category is required")
	}

	sr := &entity.ServiceRequest{
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		Status:      entity.RequestPending,
		UserID:      caller.UserID,
	}
	if err := s.Repo.Create(s.DB, sr); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "database error", err)
	}
	return sr, nil
}

// List is role-scoped. Providers see their assigned requests by
// default and the open pending pool with status=pending.
func (s *ServiceRequestService) List(caller Identity, status string) ([]entity.ServiceRequest, error) {
	if err := requireRole(caller, entity.RoleUser, entity.RoleProvider, entity.RoleAdmin); err != nil {
		return nil, err
	}
	var (
		out []entity.ServiceRequest
		err error
	)
	switch caller.Role {
	case entity.RoleAdmin:
		out, err = s.Repo.ListAll()
	case entity.RoleProvider:
		if status == entity.RequestPending {
			out, err = s.Repo.ListPending()
		} else {
			out, err = s.Repo.ListForProvider(caller.UserID)
		}
	default:
		out, err = s.Repo.ListForUser(caller.UserID)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "database error", err)
	}
	return out, nil
}

func (s *ServiceRequestService) Get(caller Identity, requestID uint) (*entity.ServiceRequest, error) {
	if err := requireRole(caller, entity.RoleUser, entity.RoleProvider, entity.RoleAdmin); err != nil {
		return nil, err
	}
	sr, err := s.Repo.FindByID(requestID)
	if err != nil {
		return nil, storeErr(err, "service request not found")
	}
	if caller.Role != entity.RoleAdmin &&
		sr.UserID != caller.UserID &&
		(sr.ProviderID == nil || *sr.ProviderID != caller.UserID) {
		return nil, apperr.New(apperr.Authorization, "forbidden")
	}
	return sr, nil
}
