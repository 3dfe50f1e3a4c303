package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/pkg/resp"
	"github.com/Akib-17/CSE471-Sheba/services"
)

type NotificationController struct {
	service *services.NotificationService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{service: services.NewNotificationService(db)}
}

// GET /notifications
func (nc *NotificationController) List(c *gin.Context) {
	out, err := nc.service.List(currentIdentity(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /notifications/:id/read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid notification id")
		return
	}
	n, err := nc.service.MarkRead(currentIdentity(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, n)
}
