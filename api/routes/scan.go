package routes

import (
	"webprint/internal/dao"
	"webprint/internal/handlers"
	"webprint/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func InitScanRoutes(router *gin.RouterGroup, db *gorm.DB) {
	scanDao := dao.NewScanDAO(db)
	scanService := services.NewScanService(scanDao)
	scanHandlers := handlers.NewScanHandler(scanService)

	scanRoutes := router.Group("/scans")
	{
		scanRoutes.POST("", scanHandlers.StartScan)
		scanRoutes.GET("", scanHandlers.ListScans)
		scanRoutes.GET("/:id", scanHandlers.GetScanByUUID)
		scanRoutes.DELETE("/:id", scanHandlers.DeleteScan)
	}
}
