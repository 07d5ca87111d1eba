package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/wanderlink/admin-gateway/internal/api/handlers"
	"github.com/wanderlink/admin-gateway/internal/api/middleware"
	"github.com/wanderlink/admin-gateway/internal/session"
)

type Router struct {
	engine          *gin.Engine
	logger          *slog.Logger
	authMiddleware  *middleware.AuthMiddleware
	authHandler     *handlers.AuthHandler
	resourceHandler *handlers.ResourceHandler
	screenHandler   *handlers.ScreenHandler
	overviewHandler *handlers.OverviewHandler
	profileHandler  *handlers.ProfileHandler
}

func NewRouter(
	sessions *session.Service,
	logger *slog.Logger,
	authHandler *handlers.AuthHandler,
	resourceHandler *handlers.ResourceHandler,
	screenHandler *handlers.ScreenHandler,
	overviewHandler *handlers.OverviewHandler,
	profileHandler *handlers.ProfileHandler,
) *Router {
	return &Router{
		logger:          logger,
		authMiddleware:  middleware.NewAuthMiddleware(sessions),
		authHandler:     authHandler,
		resourceHandler: resourceHandler,
		screenHandler:   screenHandler,
		overviewHandler: overviewHandler,
		profileHandler:  profileHandler,
	}
}

func (r *Router) Setup(mode string) *gin.Engine {
	gin.SetMode(mode)
	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.RequestLogger(r.logger))

	r.setupRoutes()
	return r.engine
}

func (r *Router) setupRoutes() {
	api := r.engine.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (public)
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/login", r.authHandler.Login)
		authRoutes.POST("/forgot-password", r.authHandler.ForgotPassword)
		authRoutes.POST("/verify-otp", r.authHandler.VerifyOTP)
		authRoutes.POST("/reset-password", r.authHandler.ResetPassword)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(r.authMiddleware.Authenticate())
	{
		protected.POST("/auth/logout", r.authHandler.Logout)

		// Profile
		protected.GET("/profile", r.profileHandler.Me)
		protected.PUT("/profile", r.profileHandler.Update)
		protected.POST("/profile/change-password", r.profileHandler.ChangePassword)
		protected.PATCH("/profile/avatar", r.profileHandler.UploadAvatar)

		// Overview widgets
		protected.GET("/overview", r.overviewHandler.Overview)

		// Generic resource CRUD
		res := protected.Group("/resources/:resource")
		{
			res.GET("", r.resourceHandler.List)
			res.POST("", r.resourceHandler.Create)
			res.GET("/:id", r.resourceHandler.Get)
			res.PUT("/:id", r.resourceHandler.Update)
			res.DELETE("/:id", r.resourceHandler.Delete)
			res.PUT("/:id/status", r.resourceHandler.UpdateStatus)
		}

		// Per-session screen state machines
		scr := protected.Group("/screens/:resource")
		{
			scr.GET("", r.screenHandler.Snapshot)
			scr.POST("/search", r.screenHandler.Search)
			scr.POST("/page", r.screenHandler.Page)
			scr.POST("/filter", r.screenHandler.Filter)
			scr.POST("/modal/open", r.screenHandler.ModalOpen)
			scr.POST("/modal/draft", r.screenHandler.ModalDraft)
			scr.POST("/modal/submit", r.screenHandler.ModalSubmit)
			scr.POST("/modal/close", r.screenHandler.ModalClose)
			scr.POST("/delete/arm", r.screenHandler.DeleteArm)
			scr.POST("/delete/confirm", r.screenHandler.DeleteConfirm)
			scr.POST("/delete/cancel", r.screenHandler.DeleteCancel)
		}
	}
}
