package handlers

import (
	"net/http"

	"tripflow/services/notification"

	"github.com/gin-gonic/gin"
)

// PushPublisher is injected at startup when Firebase is configured.
var PushPublisher *notification.FCMPublisher

// RegisterPushTokenHandler associates a device token with a session so
// job and itinerary events reach the device while the app is backgrounded.
func RegisterPushTokenHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if PushPublisher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications are not enabled"})
		return
	}

	PushPublisher.RegisterToken(sessionID, input.Token)
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID})
}
