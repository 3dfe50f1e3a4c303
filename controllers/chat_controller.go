package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/pkg/resp"
	"github.com/Akib-17/CSE471-Sheba/services"
)

type ChatController struct {
	service *services.ChatService
}

func NewChatController(db *gorm.DB) *ChatController {
	return &ChatController{service: services.NewChatService(db)}
}

func complaintThread(id uint) services.ThreadRef {
	return services.ThreadRef{ComplaintID: &id}
}

func requestThread(id uint) services.ThreadRef {
	return services.ThreadRef{ServiceRequestID: &id}
}

// GET /complaints/:id/messages?after=&limit=
func (cc *ChatController) ListComplaintMessages(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid complaint id")
		return
	}
	cc.list(c, complaintThread(id))
}

// POST /complaints/:id/messages
func (cc *ChatController) PostComplaintMessage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid complaint id")
		return
	}
	cc.post(c, complaintThread(id))
}

// GET /service-requests/:id/messages?after=&limit=
func (cc *ChatController) ListRequestMessages(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid service request id")
		return
	}
	cc.list(c, requestThread(id))
}

// POST /service-requests/:id/messages
func (cc *ChatController) PostRequestMessage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid service request id")
		return
	}
	cc.post(c, requestThread(id))
}

func (cc *ChatController) list(c *gin.Context, ref services.ThreadRef) {
	after, _ := strconv.ParseUint(c.DefaultQuery("after", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	msgs, err := cc.service.List(currentIdentity(c), ref, uint(after), limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, msgs)
}

func (cc *ChatController) post(c *gin.Context, ref services.ThreadRef) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}

	msg, err := cc.service.Post(currentIdentity(c), ref, req.Message)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, msg)
}
