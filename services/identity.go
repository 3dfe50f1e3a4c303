package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/pkg/apperr"
)

// Identity is the resolved caller: who they are and what they may act
// as. Controllers build it from the verified JWT; services never look
// at tokens.
type Identity struct {
	UserID uint
	Role   string
}

// requireRole is the single authorization gate for role-bound
// operations. Participant predicates (thread membership, ownership)
// are checked separately by each service.
func requireRole(caller Identity, roles ...string) error {
	if caller.UserID == 0 || caller.Role == "" {
		return apperr.New(apperr.Authentication, "unauthenticated")
	}
	for _, r := range roles {
		if caller.Role == r {
			return nil
		}
	}
	return apperr.New(apperr.Authorization, "forbidden")
}

// storeErr classifies a repository error: missing rows become NotFound
// with a caller-safe message, everything else stays internal.
func storeErr(err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, notFoundMsg)
	}
	return apperr.Wrap(apperr.Storage, "database error", err)
}
