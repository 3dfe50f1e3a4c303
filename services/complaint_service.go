package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/entity"
	"github.com/Akib-17/CSE471-Sheba/pkg/apperr"
	"github.com/Akib-17/CSE471-Sheba/repository"
)

// ComplaintService drives the complaint lifecycle:
// pending --reply--> reviewed --resolve--> resolved. No transition
// skips reviewed and none goes backward.
type ComplaintService struct {
	DB       *gorm.DB
	Repo     *repository.ComplaintRepository
	UserRepo *repository.UserRepository
	ReqRepo  *repository.ServiceRequestRepository
}

func NewComplaintService(db *gorm.DB) *ComplaintService {
	return &ComplaintService{
		DB:       db,
		Repo:     repository.NewComplaintRepository(db),
		UserRepo: repository.NewUserRepository(db),
		ReqRepo:  repository.NewServiceRequestRepository(db),
	}
}

type CreateComplaintInput struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	ProviderUniqueID string `json:"provider_unique_id"`
	ServiceRequestID *uint  `json:"service_request_id"`
}

func (s *ComplaintService) Create(caller Identity, in CreateComplaintInput) (*repository.ComplaintView, error) {
	if err := requireRole(caller, entity.RoleUser); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, apperr.New(apperr.Validation, "title and description are required")
	}

	var providerID *uint
	if in.ProviderUniqueID != "" {
		provider, err := s.UserRepo.FindByProviderUniqueID(in.ProviderUniqueID)
		if err != nil {
			return nil, storeErr(err, "provider not found")
		}
		providerID = &provider.ID
	}
	if in.ServiceRequestID != nil {
		if _, err := s.ReqRepo.FindByID(*in.ServiceRequestID); err != nil {
			return nil, storeErr(err, "service request not found")
		}
	}

	c := &entity.Complaint{
		Title:            strings.TrimSpace(in.Title),
		Description:      in.Description,
		Status:           entity.ComplaintPending,
		UserID:           caller.UserID,
		ProviderID:       providerID,
		ServiceRequestID: in.ServiceRequestID,
	}
	if err := s.Repo.Create(s.DB, c); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "database error", err)
	}
	return s.view(c.ID)
}

// Reply sets the admin response and advances pending → reviewed. A
// second reply overwrites the response without moving the status, so
// the operation is idempotent on already-reviewed complaints.
func (s *ComplaintService) Reply(caller Identity, complaintID uint, response string) (*repository.ComplaintView, error) {
	if err := requireRole(caller, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(response) == "" {
		return nil, apperr.New(apperr.Validation, "response is required")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.Repo.FindByID(tx, complaintID)
		if err != nil {
			return storeErr(err, "complaint not found")
		}
		if c.Status == entity.ComplaintPending {
			// Guarded, so a concurrent reply cannot double-advance.
			if _, err := s.Repo.UpdateStatusGuard(tx, complaintID, entity.ComplaintPending, entity.ComplaintReviewed); err != nil {
				return apperr.Wrap(apperr.Storage, "database error", err)
			}
		}
		if err := s.Repo.SetAdminResponse(tx, complaintID, response); err != nil {
			return apperr.Wrap(apperr.Storage, "database error", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(complaintID)
}

// Resolve is the terminal transition. It is only legal from reviewed:
// a complaint must be investigated before it can be closed out.
func (s *ComplaintService) Resolve(caller Identity, complaintID uint) (*repository.ComplaintView, error) {
	if err := requireRole(caller, entity.RoleAdmin); err != nil {
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.Repo.FindByID(tx, complaintID); err != nil {
			return storeErr(err, "complaint not found")
		}
		affected, err := s.Repo.UpdateStatusGuard(tx, complaintID, entity.ComplaintReviewed, entity.ComplaintResolved)
		if err != nil {
			return apperr.Wrap(apperr.Storage, "database error", err)
		}
		if affected == 0 {
			return apperr.New(apperr.InvalidState, "complaint must be reviewed before it can be resolved")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(complaintID)
}

// List is role-scoped: users see what they filed, providers what is
// filed against them, admins everything.
func (s *ComplaintService) List(caller Identity) ([]repository.ComplaintView, error) {
	if err := requireRole(caller, entity.RoleUser, entity.RoleProvider, entity.RoleAdmin); err != nil {
		return nil, err
	}
	var (
		out []repository.ComplaintView
		err error
	)
	switch caller.Role {
	case entity.RoleAdmin:
		out, err = s.Repo.ListViewsAll()
	case entity.RoleProvider:
		out, err = s.Repo.ListViewsForProvider(caller.UserID)
	default:
		out, err = s.Repo.ListViewsForUser(caller.UserID)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "database error", err)
	}
	return out, nil
}

func (s *ComplaintService) Get(caller Identity, complaintID uint) (*repository.ComplaintView, error) {
	if err := requireRole(caller, entity.RoleUser, entity.RoleProvider, entity.RoleAdmin); err != nil {
		return nil, err
	}
	v, err := s.Repo.GetView(complaintID)
	if err != nil {
		return nil, storeErr(err, "complaint not found")
	}
	if caller.Role != entity.RoleAdmin &&
		v.UserID != caller.UserID &&
		(v.ProviderID == nil || *v.ProviderID != caller.UserID) {
		return nil, apperr.New(apperr.Authorization, "forbidden")
	}
	return v, nil
}

// Delete removes a complaint and everything it owns: its warnings and
// its chat thread go with it.
func (s *ComplaintService) Delete(caller Identity, complaintID uint) error {
	if err := requireRole(caller, entity.RoleAdmin); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.Repo.FindByID(tx, complaintID); err != nil {
			return storeErr(err, "complaint not found")
		}
		if err := s.Repo.DeleteCascade(tx, complaintID); err != nil {
			return apperr.Wrap(apperr.Storage, "database error", err)
		}
		return nil
	})
}

func (s *ComplaintService) view(id uint) (*repository.ComplaintView, error) {
	v, err := s.Repo.GetView(id)
	if err != nil {
		return nil, storeErr(err, "complaint not found")
	}
	return v, nil
}
