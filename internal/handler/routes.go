package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/faisalcam/cctv-shop-api/internal/middleware"
	"github.com/faisalcam/cctv-shop-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth       *AuthHandler
	Warranties *WarrantyHandler
	Claims     *ClaimHandler
	Quotations *QuotationHandler
	Metrics    *MetricsHandler
}

// Register mounts all API routes. Admin routes sit behind JWT plus an admin
// role check; the public group is unauthenticated and exposes only the
// phone-number keyed customer surface.
func Register(r *gin.Engine, h Handlers, authService *service.AuthService) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	authProtected := api.Group("/auth", middleware.JWT(authService))
	authProtected.POST("/logout", h.Auth.Logout)
	authProtected.POST("/change-password", h.Auth.ChangePassword)
	authProtected.GET("/me", h.Auth.Me)

	public := api.Group("/public")
	public.POST("/claims", h.Claims.Create)
	public.GET("/claims/phone/:phoneNumber", h.Claims.GetByPhoneNumber)
	public.GET("/warranties/phone/:phoneNumber", h.Warranties.GetByPhoneNumber)
	public.GET("/warranties/id/:warrantyId", h.Warranties.GetByWarrantyID)
	public.GET("/eligibility/:phoneNumber", h.Warranties.Eligibility)
	public.POST("/quotations", h.Quotations.Create)

	admin := api.Group("", middleware.JWT(authService), middleware.RequireAdmin())

	warranties := admin.Group("/warranties")
	warranties.GET("", h.Warranties.List)
	warranties.POST("", h.Warranties.Create)
	warranties.GET("/stats", h.Warranties.Stats)
	warranties.GET("/export", h.Warranties.Export)
	warranties.POST("/sweep-expired", h.Warranties.SweepExpired)
	warranties.GET("/status/:status", h.Warranties.ListByStatus)
	warranties.GET("/:id", h.Warranties.Get)
	warranties.PUT("/:id", h.Warranties.Update)
	warranties.DELETE("/:id", h.Warranties.Delete)

	claims := admin.Group("/claims")
	claims.GET("", h.Claims.List)
	claims.GET("/stats", h.Claims.Stats)
	claims.GET("/export", h.Claims.Export)
	claims.GET("/status/:status", h.Claims.ListByStatus)
	claims.GET("/:id", h.Claims.Get)
	claims.PUT("/:id", h.Claims.Update)
	claims.PATCH("/:id/status", h.Claims.UpdateStatus)
	claims.DELETE("/:id", h.Claims.Delete)

	quotations := admin.Group("/quotations")
	quotations.GET("", h.Quotations.List)
	quotations.GET("/:id", h.Quotations.Get)
	quotations.PUT("/:id", h.Quotations.Update)
	quotations.DELETE("/:id", h.Quotations.Delete)
}
