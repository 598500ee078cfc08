package handlers

import (
	"net/http"

	"tripflow/services/planner"
	"tripflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlannerSvc is injected at startup before routes are registered.
var PlannerSvc planner.PlannerService

// SubmitTripHandler accepts a free-form trip request and starts a
// planning job. An existing sessionID re-plans that session.
func SubmitTripHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var input struct {
		SessionID string `json:"sessionId"`
		Text      string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sessionID, jobID, err := PlannerSvc.Submit(c.Request.Context(), input.SessionID, input.Text)
	if err != nil {
		respondPlannerError(c, err)
		return
	}

	logger.Info("Trip request accepted", zap.String("sessionID", sessionID), zap.String("jobID", jobID))
	c.JSON(http.StatusAccepted, gin.H{
		"sessionID": sessionID,
		"jobID":     jobID,
	})
}

// ReplyHandler answers the pending clarification question for a session.
func ReplyHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	jobID, err := PlannerSvc.SubmitReply(c.Request.Context(), sessionID, input.Text)
	if err != nil {
		respondPlannerError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"sessionID": sessionID,
		"jobID":     jobID,
	})
}

// SelectFlightHandler picks one of the offered flight options by index.
func SelectFlightHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var input struct {
		Index *int `json:"index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	jobID, err := PlannerSvc.SelectFlight(c.Request.Context(), sessionID, *input.Index)
	if err != nil {
		respondPlannerError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"sessionID": sessionID,
		"jobID":     jobID,
	})
}

// FeedbackHandler revises a completed itinerary along one category.
func FeedbackHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var input struct {
		Category string `json:"category" binding:"required"`
		Detail   string `json:"detail"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	jobID, err := PlannerSvc.SubmitFeedback(c.Request.Context(), sessionID, input.Category, input.Detail)
	if err != nil {
		respondPlannerError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"sessionID": sessionID,
		"jobID":     jobID,
	})
}

func respondPlannerError(c *gin.Context, err error) {
	switch {
	case planner.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case planner.IsStateConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		utils.GetLogger().Error("Planner request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
