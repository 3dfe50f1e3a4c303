package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/pkg/resp"
	"github.com/Akib-17/CSE471-Sheba/repository"
	"github.com/Akib-17/CSE471-Sheba/services"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(db *gorm.DB, jwtSecret string, jwtTTL time.Duration) *AuthController {
	repo := repository.NewUserRepository(db)
	return &AuthController{service: services.NewAuthService(repo, jwtSecret, jwtTTL)}
}

// POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}

	user, err := ac.service.Register(req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, user)
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "username and password are required")
		return
	}

	token, user, err := ac.service.Login(req.Username, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// GET /auth/me
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.service.Me(currentIdentity(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}
