package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/entity"
	"github.com/Akib-17/CSE471-Sheba/pkg/apperr"
	"github.com/Akib-17/CSE471-Sheba/pkg/notify"
	"github.com/Akib-17/CSE471-Sheba/repository"
)

// WarningService issues sanction records against providers. The one
// business rule that matters: investigate before sanction — the backing
// complaint must have left pending.
type WarningService struct {
	DB         *gorm.DB
	Repo       *repository.WarningRepository
	Complaints *repository.ComplaintRepository
	Notifier   *notify.Notifier
}

func NewWarningService(db *gorm.DB, notifier *notify.Notifier) *WarningService {
	return &WarningService{
		DB:         db,
		Repo:       repository.NewWarningRepository(db),
		Complaints: repository.NewComplaintRepository(db),
		Notifier:   notifier,
	}
}

// Issue creates an immutable warning against the complaint's provider.
// The complaint's status is read inside the transaction; since status
// never regresses, a complaint seen as reviewed stays reviewed and the
// invariant holds without a row lock.
func (s *WarningService) Issue(caller Identity, complaintID uint, message string) (*entity.Warning, error) {
	if err := requireRole(caller, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, apperr.New(apperr.Validation, "message is required")
	}

	var w *entity.Warning
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.Complaints.FindByID(tx, complaintID)
		if err != nil {
			return storeErr(err, "complaint not found")
		}
		if c.Status == entity.ComplaintPending {
			return apperr.New(apperr.InvalidState, "complaint must be reviewed before issuing a warning")
		}
		if c.ProviderID == nil {
			return apperr.New(apperr.Validation, "complaint does not target a provider")
		}

		w = &entity.Warning{
			ComplaintID: c.ID,
			ProviderID:  *c.ProviderID,
			AdminID:     caller.UserID,
			Message:     message,
		}
		if err := s.Repo.Create(tx, w); err != nil {
			return apperr.Wrap(apperr.Storage, "database error", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: a lost notification never fails the issuance.
	s.Notifier.Notify(w.ProviderID, "You have received a warning: "+message)
	return w, nil
}

// List: providers see their own warnings, admins all of them. Plain
// users have no business here at all.
func (s *WarningService) List(caller Identity) ([]repository.WarningView, error) {
	if err := requireRole(caller, entity.RoleProvider, entity.RoleAdmin); err != nil {
		return nil, err
	}
	var (
		out []repository.WarningView
		err error
	)
	if caller.Role == entity.RoleAdmin {
		out, err = s.Repo.ListAll()
	} else {
		out, err = s.Repo.ListForProvider(caller.UserID)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "database error", err)
	}
	return out, nil
}
