package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceName identifies this service in health responses.
const ServiceName = "menu-summarizer"

// RegisterHealthRoutes registers the liveness endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/api/health", handleHealth)
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": ServiceName,
	})
}
