package main

import (
	"github.com/gin-gonic/gin"
	"linkpage.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	profileHandler *handlers.ProfileHandler
	linkHandler    *handlers.LinkHandler
	authMiddleware gin.HandlerFunc
}

// registerRoutes mounts the API at the root. The auth group must stay at
// /auth because the refresh cookie is scoped to that path.
func registerRoutes(r *gin.Engine, d routeDeps) {
	// Auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", d.authHandler.Register)
		auth.POST("/login", d.authHandler.Login)
		auth.POST("/refresh", d.authHandler.Refresh)
		auth.POST("/logout", d.authHandler.Logout)
		auth.GET("/verify-email", d.authHandler.VerifyEmail)
		auth.POST("/forgot-password", d.authHandler.ForgotPassword)
		auth.POST("/reset-password", d.authHandler.ResetPassword)
		auth.GET("/validate/email/:email", d.authHandler.ValidateEmail)
		auth.GET("/validate/username/:username", d.authHandler.ValidateUsername)

		auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		auth.POST("/resend-verification", d.authMiddleware, d.authHandler.ResendVerification)
	}

	// User routes. Only the public page lookup is open; listing and lookup
	// by id expose email addresses and require a valid token.
	users := r.Group("/users")
	{
		users.GET("/username/:username", d.userHandler.PublicPage)

		users.GET("", d.authMiddleware, d.userHandler.List)
		users.GET("/:id", d.authMiddleware, d.userHandler.Get)

		users.PUT("/me", d.authMiddleware, d.userHandler.UpdateMe)
		users.DELETE("/me", d.authMiddleware, d.userHandler.DeleteMe)
		users.POST("/me/avatar", d.authMiddleware, d.userHandler.PresignAvatar)
	}

	// Profile routes
	profiles := r.Group("/profiles")
	{
		profiles.GET("/:user_id", d.authMiddleware, d.profileHandler.Get)

		me := profiles.Group("/me")
		me.Use(d.authMiddleware)
		{
			me.GET("", d.profileHandler.GetMe)
			me.POST("", d.profileHandler.CreateMe)
			me.PUT("", d.profileHandler.UpdateMe)
			me.DELETE("", d.profileHandler.DeleteMe)
		}
	}

	// Link routes
	links := r.Group("/links")
	{
		links.GET("/user/:username", d.linkHandler.ListPublic)
		links.POST("/:id/click", d.linkHandler.Click)

		protected := links.Group("")
		protected.Use(d.authMiddleware)
		{
			protected.GET("", d.linkHandler.List)
			protected.POST("", d.linkHandler.Create)
			protected.POST("/reorder", d.linkHandler.Reorder)
			protected.GET("/:id", d.linkHandler.Get)
			protected.PUT("/:id", d.linkHandler.Update)
			protected.DELETE("/:id", d.linkHandler.Delete)
		}
	}
}
