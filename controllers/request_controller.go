package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/entity"
	"github.com/Akib-17/CSE471-Sheba/pkg/notify"
	"github.com/Akib-17/CSE471-Sheba/pkg/resp"
	"github.com/Akib-17/CSE471-Sheba/services"
)

type ServiceRequestController struct {
	service *services.ServiceRequestService
}

func NewServiceRequestController(db *gorm.DB, notifier *notify.Notifier) *ServiceRequestController {
	return &ServiceRequestController{service: services.NewServiceRequestService(db, notifier)}
}

// POST /service-requests
func (rc *ServiceRequestController) Create(c *gin.Context) {
	var req services.CreateRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}

	sr, err := rc.service.Create(currentIdentity(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, sr)
}

// GET /service-requests?status=
func (rc *ServiceRequestController) List(c *gin.Context) {
	out, err := rc.service.List(currentIdentity(c), c.Query("status"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /service-requests/:id
func (rc *ServiceRequestController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid service request id")
		return
	}
	sr, err := rc.service.Get(currentIdentity(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, sr)
}

// PATCH /service-requests/:id/accept (provider)
func (rc *ServiceRequestController) Accept(c *gin.Context) {
	rc.transition(c, rc.service.Accept)
}

// PATCH /service-requests/:id/reject (provider)
func (rc *ServiceRequestController) Reject(c *gin.Context) {
	rc.transition(c, rc.service.Reject)
}

// PATCH /service-requests/:id/complete (requester or assigned provider)
func (rc *ServiceRequestController) Complete(c *gin.Context) {
	rc.transition(c, rc.service.Complete)
}

// POST /service-requests/:id/rate (requester)
func (rc *ServiceRequestController) Rate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid service request id")
		return
	}
	var req struct {
		Rating int     `json:"rating"`
		Review *string `json:"review"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}

	sr, err := rc.service.Rate(currentIdentity(c), id, req.Rating, req.Review)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, sr)
}

func (rc *ServiceRequestController) transition(c *gin.Context, op func(services.Identity, uint) (*entity.ServiceRequest, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid service request id")
		return
	}
	sr, err := op(currentIdentity(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, sr)
}
