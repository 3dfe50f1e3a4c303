package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/configs"
	"github.com/Akib-17/CSE471-Sheba/controllers"
	"github.com/Akib-17/CSE471-Sheba/entity"
	"github.com/Akib-17/CSE471-Sheba/middlewares"
	"github.com/Akib-17/CSE471-Sheba/pkg/notify"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, rdb *redis.Client) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	notifier := notify.New(db, rdb)

	// Controllers
	authCtrl := controllers.NewAuthController(db, cfg.JWTSecret, cfg.JWTTTL)
	reqCtrl := controllers.NewServiceRequestController(db, notifier)
	complaintCtrl := controllers.NewComplaintController(db, notifier)
	warningCtrl := controllers.NewWarningController(db, notifier)
	chatCtrl := controllers.NewChatController(db)
	notifCtrl := controllers.NewNotificationController(db)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware())
	{
		aAuth.GET("/me", authCtrl.Me)
	}

	// Service requests
	sr := r.Group("/service-requests", middlewares.AuthMiddleware())
	{
		sr.POST("", reqCtrl.Create)
		sr.GET("", reqCtrl.List)
		sr.GET("/:id", reqCtrl.Detail)
		sr.PATCH("/:id/accept", middlewares.AuthMiddleware(entity.RoleProvider), reqCtrl.Accept)
		sr.PATCH("/:id/reject", middlewares.AuthMiddleware(entity.RoleProvider), reqCtrl.Reject)
		sr.PATCH("/:id/complete", reqCtrl.Complete)
		sr.POST("/:id/rate", reqCtrl.Rate)

		sr.GET("/:id/messages", chatCtrl.ListRequestMessages)
		sr.POST("/:id/messages", chatCtrl.PostRequestMessage)
	}

	// Complaints
	cp := r.Group("/complaints", middlewares.AuthMiddleware())
	{
		cp.POST("", complaintCtrl.Create)
		cp.GET("", complaintCtrl.List)
		cp.GET("/:id", complaintCtrl.Detail)
		cp.POST("/:id/reply", middlewares.AuthMiddleware(entity.RoleAdmin), complaintCtrl.Reply)
		cp.PATCH("/:id/resolve", middlewares.AuthMiddleware(entity.RoleAdmin), complaintCtrl.Resolve)
		cp.POST("/:id/warn_provider", middlewares.AuthMiddleware(entity.RoleAdmin), complaintCtrl.WarnProvider)
		cp.DELETE("/:id", middlewares.AuthMiddleware(entity.RoleAdmin), complaintCtrl.Delete)

		cp.GET("/:id/messages", chatCtrl.ListComplaintMessages)
		cp.POST("/:id/messages", chatCtrl.PostComplaintMessage)
	}

	// Warnings (providers and admins; the service scopes the result)
	r.GET("/warnings", middlewares.AuthMiddleware(), warningCtrl.List)

	// Notifications
	nf := r.Group("/notifications", middlewares.AuthMiddleware())
	{
		nf.GET("", notifCtrl.List)
		nf.PATCH("/:id/read", notifCtrl.MarkRead)
	}
}
