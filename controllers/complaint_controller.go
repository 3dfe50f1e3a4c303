package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/pkg/notify"
	"github.com/Akib-17/CSE471-Sheba/pkg/resp"
	"github.com/Akib-17/CSE471-Sheba/services"
)

type ComplaintController struct {
	service  *services.ComplaintService
	warnings *services.WarningService
}

func NewComplaintController(db *gorm.DB, notifier *notify.Notifier) *ComplaintController {
	return &ComplaintController{
		service:  services.NewComplaintService(db),
		warnings: services.NewWarningService(db, notifier),
	}
}

// POST /complaints
func (cc *ComplaintController) Create(c *gin.Context) {
	var req services.CreateComplaintInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}

	view, err := cc.service.Create(currentIdentity(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, view)
}

// GET /complaints (role-scoped)
func (cc *ComplaintController) List(c *gin.Context) {
	views, err := cc.service.List(currentIdentity(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, views)
}

// GET /complaints/:id
func (cc *ComplaintController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid complaint id")
		return
	}
	view, err := cc.service.Get(currentIdentity(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, view)
}

// POST /complaints/:id/reply (admin)
func (cc *ComplaintController) Reply(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid complaint id")
		return
	}
	var req struct {
		Response string `json:"response"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}

	view, err := cc.service.Reply(currentIdentity(c), id, req.Response)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, view)
}

// PATCH /complaints/:id/resolve (admin)
func (cc *ComplaintController) Resolve(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid complaint id")
		return
	}
	view, err := cc.service.Resolve(currentIdentity(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, view)
}

// POST /complaints/:id/warn_provider (admin)
func (cc *ComplaintController) WarnProvider(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid complaint id")
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}

	warning, err := cc.warnings.Issue(currentIdentity(c), id, req.Message)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, warning)
}

// DELETE /complaints/:id (admin)
func (cc *ComplaintController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid complaint id")
		return
	}
	if err := cc.service.Delete(currentIdentity(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
