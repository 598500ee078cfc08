package handlers

import (
	"net/http"

	"tripflow/services/planner"
	"tripflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetSessionHandler returns the client-facing view of a planning
// session: conversation, pending question, flight options when a
// selection is awaited, and the itinerary once assembled.
func GetSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	snap, err := PlannerSvc.GetSnapshot(c.Request.Context(), sessionID)
	if err != nil {
		if planner.IsValidation(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to fetch session", zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, snap)
}
