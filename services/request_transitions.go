package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/entity"
	"github.com/Akib-17/CSE471-Sheba/pkg/apperr"
)

// Request status only moves forward:
// pending → accepted → completed, or pending → rejected.

// Accept claims a pending, unassigned request for the calling provider.
func (s *ServiceRequestService) Accept(caller Identity, requestID uint) (*entity.ServiceRequest, error) {
	if err := requireRole(caller, entity.RoleProvider); err != nil {
		return nil, err
	}

	var requesterID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		sr, err := s.Repo.FindByID(requestID)
		if err != nil {
			return storeErr(err, "service request not found")
		}
		requesterID = sr.UserID

		affected, err := s.Repo.AcceptGuard(tx, requestID, caller.UserID)
		if err != nil {
			return apperr.Wrap(apperr.Storage, "database error", err)
		}
		if affected == 0 {
			return apperr.New(apperr.InvalidState, "request is not open for acceptance")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.Notify(requesterID, fmt.Sprintf("Your service request #%d has been accepted", requestID))
	return s.reload(requestID)
}

// Reject declines a still-pending request.
func (s *ServiceRequestService) Reject(caller Identity, requestID uint) (*entity.ServiceRequest, error) {
	if err := requireRole(caller, entity.RoleProvider); err != nil {
		return nil, err
	}

	var requesterID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		sr, err := s.Repo.FindByID(requestID)
		if err != nil {
			return storeErr(err, "service request not found")
		}
		requesterID = sr.UserID

		affected, err := s.Repo.UpdateStatusGuard(tx, requestID, entity.RequestPending, entity.RequestRejected)
		if err != nil {
			return apperr.Wrap(apperr.Storage, "database error", err)
		}
		if affected == 0 {
			return apperr.New(apperr.InvalidState, "request is no longer pending")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.Notify(requesterID, fmt.Sprintf("Your service request #%d has been rejected", requestID))
	return s.reload(requestID)
}

// Complete closes an accepted request. Either side of the engagement
// may mark it done; there is no un-completing.
func (s *ServiceRequestService) Complete(caller Identity, requestID uint) (*entity.ServiceRequest, error) {
	if err := requireRole(caller, entity.RoleUser, entity.RoleProvider); err != nil {
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		sr, err := s.Repo.FindByID(requestID)
		if err != nil {
			return storeErr(err, "service request not found")
		}
		if sr.UserID != caller.UserID &&
			(sr.ProviderID == nil || *sr.ProviderID != caller.UserID) {
			return apperr.New(apperr.Authorization, "forbidden")
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, requestID, entity.RequestAccepted, entity.RequestCompleted)
		if err != nil {
			return apperr.Wrap(apperr.Storage, "database error", err)
		}
		if affected == 0 {
			return apperr.New(apperr.InvalidState, "request must be accepted before completion")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reload(requestID)
}

// Rate records the requester's rating for a completed request, exactly
// once, and folds it into the provider's aggregate in the same
// transaction.
func (s *ServiceRequestService) Rate(caller Identity, requestID uint, rating int, review *string) (*entity.ServiceRequest, error) {
	if err := requireRole(caller, entity.RoleUser); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, apperr.New(apperr.Validation, "rating must be between 1 and 5")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		sr, err := s.Repo.FindByID(requestID)
		if err != nil {
			return storeErr(err, "service request not found")
		}
		if sr.UserID != caller.UserID {
			return apperr.New(apperr.Authorization, "only the requester may rate")
		}

		affected, err := s.Repo.SetRatingGuard(tx, requestID, rating, review)
		if err != nil {
			return apperr.Wrap(apperr.Storage, "database error", err)
		}
		if affected == 0 {
			return apperr.New(apperr.InvalidState, "request must be completed and not yet rated")
		}

		if sr.ProviderID != nil {
			if err := s.UserRepo.ApplyRating(tx, *sr.ProviderID, rating); err != nil {
				return apperr.Wrap(apperr.Storage, "database error", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reload(requestID)
}

func (s *ServiceRequestService) reload(requestID uint) (*entity.ServiceRequest, error) {
	sr, err := s.Repo.FindByID(requestID)
	if err != nil {
		return nil, storeErr(err, "service request not found")
	}
	return sr, nil
}
