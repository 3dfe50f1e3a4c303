package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/pkg/notify"
	"github.com/Akib-17/CSE471-Sheba/pkg/resp"
	"github.com/Akib-17/CSE471-Sheba/services"
)

type WarningController struct {
	service *services.WarningService
}

func NewWarningController(db *gorm.DB, notifier *notify.Notifier) *WarningController {
	return &WarningController{service: services.NewWarningService(db, notifier)}
}

// GET /warnings — providers see their own, admins everything.
func (wc *WarningController) List(c *gin.Context) {
	views, err := wc.service.List(currentIdentity(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, views)
}
