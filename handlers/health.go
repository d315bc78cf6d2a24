package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck is a lightweight, unauthenticated endpoint for uptime
// monitoring and load balancers.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "API is up and running!",
	})
}
