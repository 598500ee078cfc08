package handlers

import (
	"net/http"

	"tripflow/services/planner"
	"tripflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetJobHandler reports the status and progress of one planning job.
func GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobID")

	job, err := PlannerSvc.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if planner.IsValidation(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to fetch job", zap.String("jobID", jobID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, job)
}
