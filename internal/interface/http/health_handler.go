package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports process liveness for probes and load balancers. It answers
// independently of directory state and skips the response envelope.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
