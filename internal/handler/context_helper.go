package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/faisalcam/cctv-shop-api/internal/middleware"
	"github.com/faisalcam/cctv-shop-api/internal/models"
)

// currentUser extracts the authenticated admin claims from the gin context.
func currentUser(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok
}
