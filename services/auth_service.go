package services

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Akib-17/CSE471-Sheba/entity"
	"github.com/Akib-17/CSE471-Sheba/pkg/apperr"
	"github.com/Akib-17/CSE471-Sheba/repository"
	"github.com/Akib-17/CSE471-Sheba/utils"
)

// AuthService owns registration and login. It is the in-process
// realization of the identity provider: a verified token resolves back
// to {user id, role}.
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

type RegisterInput struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	Role            string `json:"role"`
	Name            string `json:"name"`
	Location        string `json:"location"`
	PartnerCategory string `json:"partner_category"`
}

// Register creates a user or provider account. Admin accounts are
// seeded, never registered.
func (s *AuthService) Register(in RegisterInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, apperr.New(apperr.Validation, "username and password are required")
	}

	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RoleProvider {
		return nil, apperr.New(apperr.Validation, "role must be user or provider")
	}

	count, err := s.userRepo.CountByUsername(username)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "database error", err)
	}
	if count > 0 {
		return nil, apperr.New(apperr.Validation, "username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "hash password failed", err)
	}

	user := &entity.User{
		Username:        username,
		Password:        string(hashed),
		Role:            role,
		Name:            strings.TrimSpace(in.Name),
		Location:        strings.TrimSpace(in.Location),
		PartnerCategory: strings.TrimSpace(in.PartnerCategory),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "database error", err)
	}

	// Providers get a public id derived from the row id, e.g. PROV-007.
	if role == entity.RoleProvider {
		uid := fmt.Sprintf("PROV-%03d", user.ID)
		if err := s.userRepo.SetProviderUniqueID(user.ID, uid); err != nil {
			return nil, apperr.Wrap(apperr.Storage, "database error", err)
		}
		user.ProviderUniqueID = &uid
	}
	return user, nil
}

// Login checks credentials and issues a JWT.
func (s *AuthService) Login(username, password string) (string, *entity.User, error) {
	username = strings.TrimSpace(username)
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return "", nil, apperr.New(apperr.Authentication, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.New(apperr.Authentication, "invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.Storage, "cannot generate token", err)
	}
	return token, user, nil
}

func (s *AuthService) Me(caller Identity) (*entity.User, error) {
	user, err := s.userRepo.FindByID(caller.UserID)
	if err != nil {
		return nil, storeErr(err, "user not found")
	}
	return user, nil
}
