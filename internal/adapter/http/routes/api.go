package routes

import (
	"fieldservice/internal/adapter/http/handlers"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates  = "/estimates"
	PathPricebook  = "/pricebook"
	PathJobs       = "/jobs"
	PathClients    = "/clients"
	PathActivities = "/activities"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addEstimateRoutes(
	rg *gin.RouterGroup,
	estimateHandler *handlers.EstimateHandler,
	reviewHandler *handlers.ReviewHandler,
	pricebookHandler *handlers.PricebookHandler,
) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.GET("", estimateHandler.ListEstimates)
		estimates.POST("", estimateHandler.CreateEstimate)

		estimates.POST("/validate", reviewHandler.ValidateEstimate)
		estimates.POST("/review", reviewHandler.ReviewEstimate)

		estimates.GET("/:id", estimateHandler.GetEstimate)
		estimates.PUT("/:id", estimateHandler.UpdateEstimate)
		estimates.PATCH("/:id", estimateHandler.PatchEstimate)
		estimates.DELETE("/:id", estimateHandler.DeleteEstimate)

		estimates.POST("/:id/send", estimateHandler.SendEstimate)
		estimates.POST("/:id/view", estimateHandler.ViewEstimate)
		estimates.POST("/:id/accept", estimateHandler.AcceptEstimate)
		estimates.POST("/:id/decline", estimateHandler.DeclineEstimate)
		estimates.POST("/:id/revise", estimateHandler.ReviseEstimate)
		estimates.POST("/:id/convert", estimateHandler.ConvertEstimate)
	}

	// The calculator lives under the singular path for existing form clients.
	rg.POST("/estimate"+PathPricebook, pricebookHandler.Calculate)
	rg.GET(PathPricebook, pricebookHandler.ListCatalog)
}

func addJobRoutes(rg *gin.RouterGroup, jobHandler *handlers.JobHandler) {
	jobs := rg.Group(PathJobs)
	{
		jobs.GET("/:id", jobHandler.GetJob)
		jobs.PATCH("/:id/status", jobHandler.UpdateJobStatus)
		jobs.POST("/:id/payments", jobHandler.RecordPayment)
		jobs.GET("/:id/payments", jobHandler.ListPayments)
	}

	rg.GET(PathClients+"/:client_id/jobs", jobHandler.ListClientJobs)
}

func addActivityRoutes(rg *gin.RouterGroup, activityHandler *handlers.ActivityHandler) {
	activities := rg.Group(PathActivities)
	{
		activities.POST("", activityHandler.CreateActivity)
		activities.GET("/tasks/pending", activityHandler.ListPendingTasks)
		activities.POST("/:id/complete", activityHandler.CompleteTask)
		activities.DELETE("/:id", activityHandler.DeleteActivity)
	}

	rg.GET(PathClients+"/:client_id/activities", activityHandler.ListClientActivities)
}
