package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/realty-review-backend/config"
	"github.com/ikkim/realty-review-backend/internal/app/controller"
	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/middleware"
)

type Router struct {
	reviewController       *controller.ReviewController
	replyController        *controller.ReplyController
	engagementController   *controller.EngagementController
	moderationController   *controller.ModerationController
	notificationController *controller.NotificationController
	webSocketController    *controller.WebSocketController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	reviewController *controller.ReviewController,
	replyController *controller.ReplyController,
	engagementController *controller.EngagementController,
	moderationController *controller.ModerationController,
	notificationController *controller.NotificationController,
	webSocketController *controller.WebSocketController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		reviewController:       reviewController,
		replyController:        replyController,
		engagementController:   engagementController,
		moderationController:   moderationController,
		notificationController: notificationController,
		webSocketController:    webSocketController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Realty Review API is running",
		})
	})

	router.GET("/ws/notifications",
		r.authMiddleware.Authenticate(),
		r.webSocketController.HandleNotifications,
	)

	v1 := router.Group("/api/v1")
	{
		companies := v1.Group("/companies")
		{
			companies.GET("/:id/reviews",
				r.authMiddleware.OptionalAuthenticate(),
				r.reviewController.ListCompanyReviews,
			)
			companies.POST("/:id/reviews",
				r.authMiddleware.Authenticate(),
				r.reviewController.CreateReview,
			)
			companies.GET("/:id/dashboard",
				r.authMiddleware.Authenticate(),
				r.reviewController.GetDashboard,
			)
		}

		reviews := v1.Group("/reviews")
		reviews.Use(r.authMiddleware.Authenticate())
		{
			reviews.PUT("/:id", r.reviewController.UpdateReview)
			reviews.DELETE("/:id", r.reviewController.DeleteReview)
			reviews.POST("/:id/reply", r.replyController.CreateReply)
			reviews.POST("/:id/vote", r.engagementController.ToggleVote(model.TargetReview))
			reviews.GET("/:id/votes", r.engagementController.CountVotes(model.TargetReview))
			reviews.POST("/:id/reports", r.engagementController.SubmitReport(model.TargetReview))
		}

		replies := v1.Group("/replies")
		replies.Use(r.authMiddleware.Authenticate())
		{
			replies.PUT("/:id", r.replyController.UpdateReply)
			replies.DELETE("/:id", r.replyController.DeleteReply)
			replies.POST("/:id/vote", r.engagementController.ToggleVote(model.TargetReply))
			replies.GET("/:id/votes", r.engagementController.CountVotes(model.TargetReply))
			replies.POST("/:id/reports", r.engagementController.SubmitReport(model.TargetReply))
		}

		notifications := v1.Group("/notifications")
		notifications.Use(r.authMiddleware.Authenticate())
		{
			notifications.GET("", r.notificationController.GetNotifications)
			notifications.GET("/unread-count", r.notificationController.GetUnreadCount)
			notifications.PUT("/read-all", r.notificationController.MarkAllAsRead)
			notifications.PUT("/:id/read", r.notificationController.MarkAsRead)
		}

		// 서비스 계층에서도 관리자 여부를 다시 확인한다
		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
		{
			admin.POST("/reviews/:id/hide", r.moderationController.HideReview)
			admin.DELETE("/reviews/:id", r.moderationController.DeleteReview)
			admin.POST("/replies/:id/hide", r.moderationController.HideReply)
			admin.DELETE("/replies/:id", r.moderationController.DeleteReply)
			admin.GET("/reports", r.moderationController.ListReports)
			admin.PUT("/reports/:kind/:id/status", r.moderationController.UpdateReportStatus)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
