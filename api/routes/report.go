package routes

import (
	"webprint/internal/handlers"
	"webprint/internal/services"

	"github.com/gin-gonic/gin"
)

func InitReportRoutes(router *gin.RouterGroup) {
	reportHandlers := handlers.NewReportHandler(services.NewReportService())

	reportRoutes := router.Group("/reports")
	{
		reportRoutes.POST("", reportHandlers.GenerateReport)
	}
}
