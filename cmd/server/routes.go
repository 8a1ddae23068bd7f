package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"bookhub.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	upgradeHandler *handlers.AccountUpgradeHandler
	authMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", d.authHandler.Signup)
			auth.POST("/signin", d.authHandler.SignIn)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
		}

		// User routes (protected)
		users := v1.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("", d.userHandler.List)
			users.POST("/lookup", d.userHandler.GetByIDs)
			users.POST("/delete", d.userHandler.DeleteMany)
			users.PATCH("/me", d.userHandler.UpdateProfile)
			users.GET("/:id", d.userHandler.GetByID)
			users.POST("/:id/verify-email", d.userHandler.SetEmailVerified)
			users.POST("/:id/deactivate", d.userHandler.Deactivate)
			users.DELETE("/:id", d.userHandler.Delete)
		}

		// Account upgrade routes (protected)
		upgrades := v1.Group("/upgrades")
		upgrades.Use(d.authMiddleware)
		{
			upgrades.POST("", d.upgradeHandler.RequestUpgrade)
			upgrades.GET("", d.upgradeHandler.ListUpgrades)
			upgrades.GET("/me", d.upgradeHandler.MyUpgrades)
			upgrades.GET("/:id", d.upgradeHandler.GetUpgrade)
			upgrades.PATCH("/:id/status", d.upgradeHandler.UpdateUpgradeStatus)
		}

		// Payment record routes (protected)
		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.GET("", d.upgradeHandler.ListPayments)
			payments.GET("/me", d.upgradeHandler.MyPayments)
			payments.GET("/:id", d.upgradeHandler.GetPayment)
			payments.PATCH("/:id/status", d.upgradeHandler.UpdatePaymentStatus)
			payments.DELETE("/:id", d.upgradeHandler.DeletePayment)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "bookhub-backend",
			"version": "0.1.0",
		})
	})
}
